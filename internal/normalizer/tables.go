package normalizer

import "regexp"

// Rewrite is one ordered phrase rewrite applied during name cleanup.
// Rewrites normalize quantity phrasing variants to a single "N x" token
// form and strip boilerplate prefixes.
type Rewrite struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Tables holds the immutable lookup data driving normalization. It is
// built once at process start and injected, so tests can substitute
// reduced tables.
type Tables struct {
	Rewrites           []Rewrite
	QuantityPatterns   map[string]*regexp.Regexp
	UnitAbbreviations  []Rewrite
	MagnitudeFactors   map[string]float64
	BaseUnits          map[string]string
	Brands             []string
	BrandAliases       map[string]string
}

// oilQuantityPattern requires a volume token; milkQuantityPattern accepts
// volume or weight, optionally pack-multiplied ("6 x 1 l", "6 uds. 1 l").
const (
	oilQuantityPattern  = `\d+(?:[.,]\d+)?\s?(?:l|litros?|ml|mililitros?)`
	milkQuantityPattern = `\d+(?:[.,]\d+)?\s?(?:kg|mg|l|litros?|ml|mililitros?|cl|gr|g)` +
		`|\d+\s?(?:uds\.?|botes|x)\s?\d+(?:[.,]\d+)?\s?(?:kg|mg|l|litros?|ml|mililitros?|cl|gr|g)`
)

// DefaultTables returns the production lookup tables.
func DefaultTables() *Tables {
	return &Tables{
		Rewrites: []Rewrite{
			{regexp.MustCompile(`tabla de precios por dia para `), ""},
			{regexp.MustCompile(`(\d+)\s*unidades de `), "${1} x "},
			{regexp.MustCompile(`(\d+)\s*botellas de `), "${1} x "},
			{regexp.MustCompile(`(\d+)\s*briks de `), "${1} x "},
			{regexp.MustCompile(`(\d+)\s*garrafas de `), "${1} x "},
		},
		QuantityPatterns: map[string]*regexp.Regexp{
			"aceite_de_oliva":   regexp.MustCompile(oilQuantityPattern),
			"aceite_de_girasol": regexp.MustCompile(oilQuantityPattern),
			"leche":             regexp.MustCompile(milkQuantityPattern),
		},
		// Longer unit words first so "mililitros" never partially
		// rewrites through "litros".
		UnitAbbreviations: []Rewrite{
			{regexp.MustCompile(`mililitros?`), "ml"},
			{regexp.MustCompile(`litros?`), "l"},
			{regexp.MustCompile(`gramos?`), "g"},
			{regexp.MustCompile(`(\d\s?)gr\b`), "${1}g"},
		},
		MagnitudeFactors: map[string]float64{
			"g":  1,     // grams as base for weight
			"kg": 1000,  // kilograms to grams
			"mg": 0.001, // milligrams to grams
			"l":  1,     // liters as base for capacity
			"ml": 0.001, // milliliters to liters
			"cl": 0.01,  // centiliters to liters
		},
		BaseUnits: map[string]string{
			"g":  "g",
			"kg": "g",
			"mg": "g",
			"l":  "l",
			"ml": "l",
			"cl": "l",
		},
		Brands:       defaultBrands(),
		BrandAliases: defaultBrandAliases(),
	}
}

// defaultBrands returns the known brand tokens, lowercase and
// accent-stripped. Declaration order breaks length ties during matching.
func defaultBrands() []string {
	return []string{
		"hacendado", "casa juncal", "carrefour", "campomar nature", "la masia", "ybarra",
		"carbonell", "koipe", "la espanola", "natursoy", "dcoop", "k arginano", "oro bailen",
		"capricho andaluz", "coosur", "de nuestra tierra", "oleum", "maestros de hojiblanca",
		"jaencoop", "guillen", "la laguna", "senorio de segura", "puleva", "asturiana",
		"kaiku", "alcampo", "pascual", "president", "santa teresa", "nivea", "flora",
		"mustela", "babaria", "babybio", "cantero de letur", "ultzama", "movit", "rianxeira",
		"el buen pastor", "eroski", "natura ecologica", "la colmenarena", "larsa", "ram",
		"vega de oro", "leyma natura", "priegola", "pravia", "llet nostra",
		"mantequilla bujia", "comansi", "montecelio", "caprea", "ecobasic", "artinata",
		"caprilait", "pasqualet", "fageda", "granja noe", "mimosa", "aiguafreda",
		"lacturale", "el castillo", "rio", "villacorona", "arla", "elosol", "diazol",
		"sveltesse", "ideal", "saha", "etnia", "leyenda", "bove", "valdezarza", "duc",
		"aires de jaen", "cambil", "olea espana", "cuatro esquinas", "quinta aldea",
		"arroyo de jaen", "mueloliva", "finca penamoucho", "coop solera", "beneo",
		"picualia", "pure bios", "les gallines", "dominus", "cortijo spiritu", "al-tabwa",
		"dos lunas", "la redonda", "quesos casario", "arcos", "aguilar de la frontera",
		"olivar de segura", "tierra de sabor", "coosol", "capicua", "fontasol", "ozolife",
		"abaco", "aromas del sur", "marques de grinon", "nunez de prado", "retama",
		"ondoliva", "verde segura", "suroliva", "saeta", "oro", "celta", "l.r.", "nestle",
		"lauki", "montbelle", "oleoestepa", "aceites de ardales", "abril", "fuenroble",
		"olivar del sur", "olibeas", "oliva verde", "oleodiel", "oleaurum", "somontano",
		"oleo cazorla", "mar de olivos", "carbonel", "ucasol", "borges", "ondosol",
		"cexasol", "lar", "letona", "lilibet", "lletera", "madriz", "unicla",
		"valles unidos", "auchan", "dia", "hipercor", "danone", "maeva", "ecran sunnique",
		"nectar of bio", "denenes", "covap", "lanisol", "urzante", "olilan",
		"palacio de los olivos", "nekeas", "carapelli", "hojiblanca", "cazorliva",
		"arrolan", "saqura", "mil olivas", "don arroniz", "elizondo", "beyena", "bomilk",
		"euskal herria", "bizkaia esnea", "gaza", "el corte ingles", "agus",
		"alhema de queiles", "aljibes", "almaoliva", "amarga y pica", "arboleda",
		"casas de hualdo", "castillo de canena", "changlot real", "conde de benalua",
		"ester sole", "ferrarini", "flor de arana", "germanor", "go vegg",
		"hacienda el palo", "iznaoliva", "jacoliva", "k arguinano", "l'estornell",
		"la almazara de canjayar", "la boella", "la organic cuisine", "merula", "miro",
		"molino de olivas de bolea", "pago baldios san carlos", "parqueoliva",
		"reales almazaras de alcaniz", "romanico", "santiveri", "tresces", "unio",
		"valroble", "venta del baron", "altamira", "ato", "clesa", "ecomil", "feiraco",
		"la yerbera", "el lagar del soto", "el molino d gines", "fruto del sur", "giralda",
		"karlos arguinano", "monegros", "oleocazorla", "laban", "santa gadea",
		"k. arguinano", "lactebal",
	}
}

// defaultBrandAliases collapses spelling variants of the same real-world
// brand onto one canonical token.
func defaultBrandAliases() map[string]string {
	return map[string]string{
		"k arginano":   "karlos arguinano",
		"k arguinano":  "karlos arguinano",
		"k. arguinano": "karlos arguinano",
		"carbonel":     "carbonell",
		"oleo cazorla": "oleocazorla",
	}
}
