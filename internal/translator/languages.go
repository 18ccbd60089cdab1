package translator

import "sort"

// Language - один элемент справочника поддерживаемых языков
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Коды проверяются до любого сетевого вызова
var supportedLanguages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"hi": "Hindi",
	"zh": "Chinese",
	"ar": "Arabic",
}

func IsSupported(code string) bool {
	_, ok := supportedLanguages[code]
	return ok
}

// Languages возвращает справочник, отсортированный по коду
func Languages() []Language {
	langs := make([]Language, 0, len(supportedLanguages))
	for code, name := range supportedLanguages {
		langs = append(langs, Language{Code: code, Name: name})
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i].Code < langs[j].Code })
	return langs
}
