// Package catalog holds the static classification tables that map raw
// detector labels to French PMR-oriented descriptions. The tables are built
// once at init and never mutated, so concurrent readers need no
// synchronization.
package catalog

// Urban and environmental obstacles.
var obstacleDescriptions = map[string]string{
	"person":  "Personne à proximité",
	"crowd":   "Groupe dense",
	"stairs":  "Escalier",
	"curb":    "Dénivelé",
	"door":    "Porte",
	"cone":    "Cône de chantier",
	"barrier": "Barrière / obstacle fixe",
	"puddle":  "Zone glissante",
}

// Retail context objects (supermarket aisles).
var retailDescriptions = map[string]string{
	"product":   "Article en rayon",
	"price_tag": "Etiquette de prix",
	"barcode":   "Code-barres visible",
	"bottle":    "Bouteille / boisson",
	"can":       "Boîte ou canette",
	"produce":   "Fruit ou légume",
	"package":   "Produit emballé",
}

// Restaurant and canteen context objects.
var restaurantDescriptions = map[string]string{
	"table":    "Table",
	"chair":    "Chaise",
	"tray":     "Plateau",
	"cutlery":  "Couverts",
	"terminal": "Terminal de paiement",
	"dish":     "Plat servi",
}

// hazardLabels lists the classes eligible for proximity-based risk
// escalation.
var hazardLabels = map[string]struct{}{
	"person":  {},
	"crowd":   {},
	"stairs":  {},
	"curb":    {},
	"cone":    {},
	"barrier": {},
	"puddle":  {},
}

// Lookup resolves a lower-cased class label to its description. Groups are
// consulted in a fixed order, obstacle first, so safety framing wins over
// commercial framing if a label ever appeared in more than one group. The
// second return is false on a miss; the caller degrades to a generic
// description rather than erroring.
func Lookup(label string) (string, bool) {
	if desc, ok := obstacleDescriptions[label]; ok {
		return desc, true
	}
	if desc, ok := retailDescriptions[label]; ok {
		return desc, true
	}
	if desc, ok := restaurantDescriptions[label]; ok {
		return desc, true
	}
	return "", false
}

// IsHazard reports whether a lower-cased class label belongs to the hazard
// set.
func IsHazard(label string) bool {
	_, ok := hazardLabels[label]
	return ok
}
