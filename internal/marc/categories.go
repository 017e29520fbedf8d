package marc

// literatureCategories are the 655_a genre values that all collapse into one
// "Literatūras recenzijas" review type. The list mirrors the genre labels
// observed in the export.
var literatureCategories = map[string]struct{}{
	"Grāmatu apskati":                          {},
	"Latgaliešu dzeja":                         {},
	"Latviešu bērnu dzeja":                     {},
	"Krievu dzeja":                             {},
	"Latviešu jaunatnes proza":                 {},
	"Latviešu fantastiskā proza":               {},
	"Igauņu dzeja":                             {},
	"Angļu spiegu romāni":                      {},
	"Dāņu romāni":                              {},
	"Amerikāņu fantastiskā proza":              {},
	"Zviedru detektīvromāni":                   {},
	"Čehu romāni":                              {},
	"Latviešu dienasgrāmatu proza":             {},
	"Vācu dzeja":                               {},
	"Latviešu zinātniskā fantastika":           {},
	"Somu dzeja":                               {},
	"Franču esejas":                            {},
	"Katalāņu romāni":                          {},
	"Grieķu dzeja":                             {},
	"Dienvidafrikāņu romāni (angļu valoda)":    {},
	"Čehu stāsti":                              {},
	"Grieķu romāni":                            {},
	"Latīņu dzeja":                             {},
	"Zviedru jaunatnes proza":                  {},
	"Itāliešu esejas":                          {},
	"Latviešu skolas proza":                    {},
	"Krievu detektīvromāni":                    {},
	"Franču detektīvromāni":                    {},
	"Austriešu dzeja":                          {},
	"Čigānu dzeja":                             {},
	"Spāņu dzeja":                              {},
	"Armēņu vēsturiskā proza":                  {},
	"Katoļu himnas un dziesmas":                {},
	"Franču dzeja":                             {},
	"Igauņu romāni":                            {},
	"Krievu zinātniskā fantastika":             {},
	"Mīlas dzeja":                              {},
	"Bulgāru dzeja":                            {},
	"Azerbaidžāņu dzeja":                       {},
	"Zviedru bērnu dzeja":                      {},
	"Zviedru romāni":                           {},
	"Poļu fantastiskā proza":                   {},
	"Holandiešu romāni":                        {},
	"Latgaliešu bērnu dzeja":                   {},
	"Krievu Ziemassvētku stāsti":               {},
	"Igauņu episkā dzeja":                      {},
	"Grieķu dzeja, hellēnisma":                 {},
	"Franču piedzīvojumu proza":                {},
	"Krievu bērnu dzeja":                       {},
	"Čehu dzeja":                               {},
	"Latviešu romantiskā proza":                {},
	"Vācu proza":                               {},
	"Amerikāņu lugas":                          {},
}

// ReviewType maps a cleaned 655_a genre to the harmonized review type:
// literature genres collapse, everything else passes through.
func ReviewType(genre string) string {
	if _, ok := literatureCategories[genre]; ok {
		return "Literatūras recenzijas"
	}
	return genre
}
