package insight

import (
	"fmt"
	"strings"

	"leadgen-engine/internal/domain"
)

const systemPrompt = "You are a private equity analyst providing investment insights in JSON format only."

func buildPrompt(l domain.Lead) string {
	rating := "Not available"
	if l.Rating > 0 {
		rating = fmt.Sprintf("%.1f (%d ratings)", l.Rating, l.RatingCount)
	}

	var b strings.Builder
	b.WriteString("You are a private equity analyst tasked with providing an initial assessment of a potential investment target.\n")
	b.WriteString("Based on the available information, provide a brief analysis of this business from a private equity perspective:\n\n")
	fmt.Fprintf(&b, "Business Name: %s\n", l.Name)
	fmt.Fprintf(&b, "Website: %s\n", l.Website)
	fmt.Fprintf(&b, "Address: %s\n", l.Address)
	fmt.Fprintf(&b, "Rating: %s\n\n", rating)
	b.WriteString(`Please include the following in your analysis:
1. Potential for growth and scalability
2. Market position assessment
3. Possible value creation strategies
4. Initial risk factors
5. Recommended next steps for due diligence

Format your response as JSON with the following structure:
{
    "summary": "Brief 2-3 sentence summary of investment potential",
    "growth_potential": "Assessment of growth potential",
    "market_position": "Assessment of market position",
    "value_creation": "Potential value creation strategies",
    "risk_factors": "Key risk factors to consider",
    "next_steps": "Recommended next steps for further analysis"
}
`)
	return b.String()
}
