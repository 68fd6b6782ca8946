// Package classify provides keyword-table sector classification, text
// entity extraction, and news sentiment analysis. These components feed
// records independently and never participate in entity resolution.
package classify

import "strings"

// Keyword weights for sector classification.
const (
	primaryWeight   = 3
	secondaryWeight = 1

	// minSectorScore is the lowest keyword score that still yields a
	// classification; below it the sector is "other". Set to one primary
	// hit so that stray secondary words alone never classify.
	minSectorScore = 3
)

// SectorKeywords holds the keyword lists for one sector.
type SectorKeywords struct {
	Primary   []string
	Secondary []string
}

// SectorClassifier scores text against per-sector keyword tables. The
// tables mix French and English terms, matching the sources the
// collectors read.
type SectorClassifier struct {
	keywords map[string]SectorKeywords
}

// NewSectorClassifier creates a classifier with the standard tables.
func NewSectorClassifier() *SectorClassifier {
	return &SectorClassifier{keywords: defaultSectorKeywords()}
}

// Classify returns the best-scoring sector for a startup's name and
// description, or "other" when no keywords match.
func (c *SectorClassifier) Classify(description, name string) string {
	text := strings.ToLower(name + " " + description)

	best := "other"
	bestScore := 0
	for sector, keywords := range c.keywords {
		score := 0
		for _, keyword := range keywords.Primary {
			if strings.Contains(text, keyword) {
				score += primaryWeight
			}
		}
		for _, keyword := range keywords.Secondary {
			if strings.Contains(text, keyword) {
				score += secondaryWeight
			}
		}
		if score > bestScore || (score == bestScore && score > 0 && sector < best) {
			best = sector
			bestScore = score
		}
	}

	if bestScore < minSectorScore {
		return "other"
	}
	return best
}

func defaultSectorKeywords() map[string]SectorKeywords {
	return map[string]SectorKeywords{
		"fintech": {
			Primary: []string{"fintech", "paiement", "banking", "finance", "monétique",
				"mobile money", "wallet", "assurance", "insurtech", "crédit"},
			Secondary: []string{"transaction", "carte", "virement", "compte", "épargne"},
		},
		"ai": {
			Primary: []string{"intelligence artificielle", "machine learning",
				"deep learning", "neural", "computer vision", "nlp",
				"traitement langage", "reconnaissance"},
			Secondary: []string{"algorithme", "prédictif", "automatisation", "apprentissage"},
		},
		"healthtech": {
			Primary: []string{"santé", "médical", "health", "télémédecine", "e-santé",
				"diagnostic", "biotech", "pharmaceutique", "thérapie"},
			Secondary: []string{"patient", "médecin", "hôpital", "clinique", "soin"},
		},
		"edtech": {
			Primary: []string{"éducation", "formation", "e-learning", "edtech", "école",
				"cours", "enseignement", "tutoring"},
			Secondary: []string{"élève", "étudiant", "professeur", "classe", "pédagogie"},
		},
		"ecommerce": {
			Primary: []string{"e-commerce", "marketplace", "vente en ligne", "boutique",
				"commerce électronique", "shop", "retail"},
			Secondary: []string{"achat", "vente", "produit", "catalogue", "panier"},
		},
		"agritech": {
			Primary: []string{"agriculture", "agritech", "farming", "irrigation",
				"smart farming", "récolte", "culture"},
			Secondary: []string{"fermier", "sol", "crop", "semence", "tracteur"},
		},
		"cleantech": {
			Primary: []string{"énergie", "cleantech", "solaire", "renouvelable",
				"environnement", "recyclage", "durable"},
			Secondary: []string{"panneau", "déchet", "carbone", "pollution", "écologie"},
		},
		"logistics": {
			Primary: []string{"logistique", "livraison", "delivery", "transport",
				"supply chain", "fret", "expédition"},
			Secondary: []string{"colis", "entrepôt", "stock", "distribution", "chauffeur"},
		},
		"saas": {
			Primary: []string{"saas", "cloud", "software", "logiciel", "plateforme",
				"application"},
			Secondary: []string{"abonnement", "utilisateur", "interface", "dashboard"},
		},
		"proptech": {
			Primary: []string{"immobilier", "proptech", "real estate", "logement",
				"appartement", "location"},
			Secondary: []string{"propriété", "bail", "locataire", "agence", "maison"},
		},
	}
}
