package translator

import "strings"

// Встроенный словарь частых фраз: для них не нужен поход во внешний сервис.
// Ключ нормализуется так же, как пользовательский ввод.
var phraseDictionary = map[string]map[string]string{
	"es": {
		"buy_groceries": "Comprar comestibles",
		"call_doctor":   "Llamar al doctor",
		"pay_bills":     "Pagar facturas",
		"clean_house":   "Limpiar casa",
		"exercise":      "Hacer ejercicio",
		"study":         "Estudiar",
		"meeting":       "Reunión",
	},
	"fr": {
		"buy_groceries": "Acheter des courses",
		"call_doctor":   "Appeler le docteur",
		"pay_bills":     "Payer les factures",
		"clean_house":   "Nettoyer la maison",
		"exercise":      "Faire de l'exercice",
		"study":         "Étudier",
		"meeting":       "Réunion",
	},
	"de": {
		"buy_groceries": "Lebensmittel kaufen",
		"call_doctor":   "Arzt anrufen",
		"pay_bills":     "Rechnungen bezahlen",
		"clean_house":   "Haus putzen",
		"exercise":      "Sport treiben",
		"study":         "Lernen",
		"meeting":       "Besprechung",
	},
	"it": {
		"buy_groceries": "Comprare generi alimentari",
		"call_doctor":   "Chiamare il dottore",
		"pay_bills":     "Pagare le bollette",
		"clean_house":   "Pulire casa",
		"exercise":      "Fare esercizio",
		"study":         "Studiare",
		"meeting":       "Riunione",
	},
	"hi": {
		"buy_groceries": "किराना खरीदना",
		"call_doctor":   "डॉक्टर को कॉल करना",
		"pay_bills":     "बिल भुगतान",
		"clean_house":   "घर साफ करना",
		"exercise":      "व्यायाम",
		"study":         "अध्ययन",
		"meeting":       "बैठक",
	},
}

var normalizeReplacer = strings.NewReplacer(" ", "_", ".", "", ",", "", "!", "", "?", "")

func normalizePhrase(text string) string {
	return normalizeReplacer.Replace(strings.ToLower(strings.TrimSpace(text)))
}

// lookupDictionary возвращает перевод только при точном совпадении ключа
func lookupDictionary(text, target string) (string, bool) {
	phrases, ok := phraseDictionary[target]
	if !ok {
		return "", false
	}
	tr, ok := phrases[normalizePhrase(text)]
	return tr, ok
}
