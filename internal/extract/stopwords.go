package extract

// stopwords is the fixed set of high-frequency function words excluded from
// keyword candidates. Only words of four letters or more matter here, since
// shorter tokens never survive the length filter.
var stopwords = map[string]struct{}{
	"быть":     {},
	"была":     {},
	"были":     {},
	"было":     {},
	"более":    {},
	"возле":    {},
	"вокруг":   {},
	"всего":    {},
	"где":      {},
	"если":     {},
	"есть":     {},
	"затем":    {},
	"здесь":    {},
	"когда":    {},
	"которая":  {},
	"которые":  {},
	"который":  {},
	"кроме":    {},
	"между":    {},
	"можно":    {},
	"может":    {},
	"однако":   {},
	"около":    {},
	"очень":    {},
	"перед":    {},
	"после":    {},
	"потому":   {},
	"поэтому":  {},
	"против":   {},
	"сейчас":   {},
	"себя":     {},
	"согласно": {},
	"также":    {},
	"такие":    {},
	"такой":    {},
	"теперь":   {},
	"только":   {},
	"хотя":     {},
	"чтобы":    {},
	"через":    {},
	"этого":    {},
	"этом":     {},
	"этот":     {},
}

// IsStopword reports whether the lowercase token is a known function word.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
