package autocorrect

// builtinCorrections maps common lowercase misspellings to their preferred
// replacements. Learned corrections are merged on top of these at runtime.
var builtinCorrections = map[string][]string{
	"abscence":    {"absence"},
	"acheive":     {"achieve"},
	"accomodate":  {"accommodate"},
	"adress":      {"address"},
	"alot":        {"a lot"},
	"arguement":   {"argument"},
	"basicly":     {"basically"},
	"becuase":     {"because"},
	"beleive":     {"believe"},
	"calender":    {"calendar"},
	"cant":        {"can't"},
	"definately":  {"definitely"},
	"dont":        {"don't"},
	"embarass":    {"embarrass"},
	"enviroment":  {"environment"},
	"existance":   {"existence"},
	"familar":     {"familiar"},
	"finaly":      {"finally"},
	"foriegn":     {"foreign"},
	"freind":      {"friend"},
	"goverment":   {"government"},
	"grammer":     {"grammar"},
	"happend":     {"happened"},
	"immediatly":  {"immediately"},
	"independant": {"independent"},
	"intrest":     {"interest"},
	"occured":     {"occurred"},
	"posession":   {"possession"},
	"recieve":     {"receive"},
	"reccomend":   {"recommend"},
	"seperate":    {"separate"},
	"succesful":   {"successful"},
	"teh":         {"the"},
	"thier":       {"their"},
	"tommorow":    {"tomorrow"},
	"truely":      {"truly"},
	"untill":      {"until"},
	"wich":        {"which"},
	"wierd":       {"weird"},
	"wont":        {"won't"},
}

func copyDictionary(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for key, values := range src {
		dst[key] = append([]string(nil), values...)
	}
	return dst
}
