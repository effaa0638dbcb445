package currencyfmt

import "strings"

// CurrencyOption is one entry of the currency catalog used to build choice lists.
type CurrencyOption struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// PositionOption pairs a symbol position with a human readable label.
type PositionOption struct {
	Position Position `json:"position" yaml:"position"`
	Label    string   `json:"label" yaml:"label"`
}

// symbols maps uppercase currency codes to display symbols.
var symbols = map[string]string{
	"AED": "د.إ",
	"AFN": "؋",
	"ALL": "L",
	"AMD": "֏",
	"ARS": "$",
	"AUD": "A$",
	"AZN": "₼",
	"BAM": "KM",
	"BDT": "৳",
	"BGN": "лв",
	"BHD": ".د.ب",
	"BRL": "R$",
	"BTC": "₿",
	"BYN": "Br",
	"CAD": "C$",
	"CHF": "CHF",
	"CLP": "$",
	"CNY": "¥",
	"COP": "$",
	"CRC": "₡",
	"CZK": "Kč",
	"DKK": "kr",
	"DZD": "دج",
	"EGP": "E£",
	"ETH": "Ξ",
	"EUR": "€",
	"GBP": "£",
	"GEL": "₾",
	"GHS": "₵",
	"HKD": "HK$",
	"HRK": "kn",
	"HUF": "Ft",
	"IDR": "Rp",
	"ILS": "₪",
	"INR": "₹",
	"IQD": "ع.د",
	"IRR": "﷼",
	"ISK": "kr",
	"JOD": "JD",
	"JPY": "¥",
	"KES": "KSh",
	"KRW": "₩",
	"KWD": "KD",
	"KZT": "₸",
	"LKR": "Rs",
	"MAD": "DH",
	"MXN": "MX$",
	"MYR": "RM",
	"NGN": "₦",
	"NOK": "kr",
	"NPR": "रू",
	"NZD": "NZ$",
	"OMR": "﷼",
	"PEN": "S/",
	"PHP": "₱",
	"PKR": "₨",
	"PLN": "zł",
	"PYG": "₲",
	"QAR": "QR",
	"RON": "lei",
	"RSD": "дин",
	"RUB": "₽",
	"SAR": "﷼",
	"SEK": "kr",
	"SGD": "S$",
	"THB": "฿",
	"TND": "DT",
	"TRY": "₺",
	"TWD": "NT$",
	"UAH": "₴",
	"USD": "$",
	"UYU": "$U",
	"VND": "₫",
	"XAF": "FCFA",
	"XOF": "CFA",
	"ZAR": "R",
}

// currencyCatalog is ordered by code; the order is what choice lists render.
var currencyCatalog = []CurrencyOption{
	{"AED", "UAE Dirham"},
	{"AFN", "Afghan Afghani"},
	{"ALL", "Albanian Lek"},
	{"AMD", "Armenian Dram"},
	{"ANG", "Netherlands Antillean Guilder"},
	{"AOA", "Angolan Kwanza"},
	{"ARS", "Argentine Peso"},
	{"AUD", "Australian Dollar"},
	{"AWG", "Aruban Florin"},
	{"AZN", "Azerbaijani Manat"},
	{"BAM", "Bosnia-Herzegovina Convertible Mark"},
	{"BBD", "Barbadian Dollar"},
	{"BDT", "Bangladeshi Taka"},
	{"BGN", "Bulgarian Lev"},
	{"BHD", "Bahraini Dinar"},
	{"BIF", "Burundian Franc"},
	{"BMD", "Bermudan Dollar"},
	{"BND", "Brunei Dollar"},
	{"BOB", "Bolivian Boliviano"},
	{"BRL", "Brazilian Real"},
	{"BSD", "Bahamian Dollar"},
	{"BTN", "Bhutanese Ngultrum"},
	{"BWP", "Botswanan Pula"},
	{"BYN", "Belarusian Ruble"},
	{"BZD", "Belize Dollar"},
	{"CAD", "Canadian Dollar"},
	{"CDF", "Congolese Franc"},
	{"CHF", "Swiss Franc"},
	{"CLP", "Chilean Peso"},
	{"CNY", "Chinese Yuan"},
	{"COP", "Colombian Peso"},
	{"CRC", "Costa Rican Colón"},
	{"CUP", "Cuban Peso"},
	{"CVE", "Cape Verdean Escudo"},
	{"CZK", "Czech Koruna"},
	{"DJF", "Djiboutian Franc"},
	{"DKK", "Danish Krone"},
	{"DOP", "Dominican Peso"},
	{"DZD", "Algerian Dinar"},
	{"EGP", "Egyptian Pound"},
	{"ERN", "Eritrean Nakfa"},
	{"ETB", "Ethiopian Birr"},
	{"EUR", "Euro"},
	{"FJD", "Fijian Dollar"},
	{"FKP", "Falkland Islands Pound"},
	{"GBP", "British Pound"},
	{"GEL", "Georgian Lari"},
	{"GHS", "Ghanaian Cedi"},
	{"GIP", "Gibraltar Pound"},
	{"GMD", "Gambian Dalasi"},
	{"GNF", "Guinean Franc"},
	{"GTQ", "Guatemalan Quetzal"},
	{"GYD", "Guyanaese Dollar"},
	{"HKD", "Hong Kong Dollar"},
	{"HNL", "Honduran Lempira"},
	{"HRK", "Croatian Kuna"},
	{"HTG", "Haitian Gourde"},
	{"HUF", "Hungarian Forint"},
	{"IDR", "Indonesian Rupiah"},
	{"ILS", "Israeli New Shekel"},
	{"INR", "Indian Rupee"},
	{"IQD", "Iraqi Dinar"},
	{"IRR", "Iranian Rial"},
	{"ISK", "Icelandic Króna"},
	{"JMD", "Jamaican Dollar"},
	{"JOD", "Jordanian Dinar"},
	{"JPY", "Japanese Yen"},
	{"KES", "Kenyan Shilling"},
	{"KGS", "Kyrgystani Som"},
	{"KHR", "Cambodian Riel"},
	{"KMF", "Comorian Franc"},
	{"KRW", "South Korean Won"},
	{"KWD", "Kuwaiti Dinar"},
	{"KYD", "Cayman Islands Dollar"},
	{"KZT", "Kazakhstani Tenge"},
	{"LAK", "Laotian Kip"},
	{"LBP", "Lebanese Pound"},
	{"LKR", "Sri Lankan Rupee"},
	{"LRD", "Liberian Dollar"},
	{"LSL", "Lesotho Loti"},
	{"LYD", "Libyan Dinar"},
	{"MAD", "Moroccan Dirham"},
	{"MDL", "Moldovan Leu"},
	{"MGA", "Malagasy Ariary"},
	{"MKD", "Macedonian Denar"},
	{"MMK", "Myanmar Kyat"},
	{"MNT", "Mongolian Tugrik"},
	{"MOP", "Macanese Pataca"},
	{"MRU", "Mauritanian Ouguiya"},
	{"MUR", "Mauritian Rupee"},
	{"MVR", "Maldivian Rufiyaa"},
	{"MWK", "Malawian Kwacha"},
	{"MXN", "Mexican Peso"},
	{"MYR", "Malaysian Ringgit"},
	{"MZN", "Mozambican Metical"},
	{"NAD", "Namibian Dollar"},
	{"NGN", "Nigerian Naira"},
	{"NIO", "Nicaraguan Córdoba"},
	{"NOK", "Norwegian Krone"},
	{"NPR", "Nepalese Rupee"},
	{"NZD", "New Zealand Dollar"},
	{"OMR", "Omani Rial"},
	{"PAB", "Panamanian Balboa"},
	{"PEN", "Peruvian Sol"},
	{"PGK", "Papua New Guinean Kina"},
	{"PHP", "Philippine Peso"},
	{"PKR", "Pakistani Rupee"},
	{"PLN", "Polish Zloty"},
	{"PYG", "Paraguayan Guarani"},
	{"QAR", "Qatari Riyal"},
	{"RON", "Romanian Leu"},
	{"RSD", "Serbian Dinar"},
	{"RUB", "Russian Ruble"},
	{"RWF", "Rwandan Franc"},
	{"SAR", "Saudi Riyal"},
	{"SBD", "Solomon Islands Dollar"},
	{"SCR", "Seychellois Rupee"},
	{"SDG", "Sudanese Pound"},
	{"SEK", "Swedish Krona"},
	{"SGD", "Singapore Dollar"},
	{"SHP", "St. Helena Pound"},
	{"SLE", "Sierra Leonean Leone"},
	{"SOS", "Somali Shilling"},
	{"SRD", "Surinamese Dollar"},
	{"SSP", "South Sudanese Pound"},
	{"STN", "São Tomé & Príncipe Dobra"},
	{"SYP", "Syrian Pound"},
	{"SZL", "Swazi Lilangeni"},
	{"THB", "Thai Baht"},
	{"TJS", "Tajikistani Somoni"},
	{"TMT", "Turkmenistani Manat"},
	{"TND", "Tunisian Dinar"},
	{"TOP", "Tongan Paʻanga"},
	{"TRY", "Turkish Lira"},
	{"TTD", "Trinidad & Tobago Dollar"},
	{"TWD", "New Taiwan Dollar"},
	{"TZS", "Tanzanian Shilling"},
	{"UAH", "Ukrainian Hryvnia"},
	{"UGX", "Ugandan Shilling"},
	{"USD", "US Dollar"},
	{"UYU", "Uruguayan Peso"},
	{"UZS", "Uzbekistani Som"},
	{"VES", "Venezuelan Bolívar"},
	{"VND", "Vietnamese Dong"},
	{"VUV", "Vanuatu Vatu"},
	{"WST", "Samoan Tala"},
	{"XAF", "Central African CFA Franc"},
	{"XCD", "East Caribbean Dollar"},
	{"XOF", "West African CFA Franc"},
	{"XPF", "CFP Franc"},
	{"YER", "Yemeni Rial"},
	{"ZAR", "South African Rand"},
	{"ZMW", "Zambian Kwacha"},
	{"ZWL", "Zimbabwean Dollar"},
}

var positionCatalog = []PositionOption{
	{PositionLeft, "Left ($100)"},
	{PositionRight, "Right (100$)"},
	{PositionLeftSpace, "Left with space ($ 100)"},
	{PositionRightSpace, "Right with space (100 $)"},
}

// LookupSymbol returns the display symbol for code, or the uppercased code
// itself when the table has no entry for it.
func LookupSymbol(code string) string {
	code = strings.ToUpper(code)
	if sym, ok := symbols[code]; ok {
		return sym
	}
	return code
}

// AllSymbols returns a copy of the symbol table.
func AllSymbols() map[string]string {
	out := make(map[string]string, len(symbols))
	for code, sym := range symbols {
		out[code] = sym
	}
	return out
}

// CurrencyCodes returns the currency catalog ordered by code.
func CurrencyCodes() []CurrencyOption {
	out := make([]CurrencyOption, len(currencyCatalog))
	copy(out, currencyCatalog)
	return out
}

// CurrencyName returns the catalog name for code.
func CurrencyName(code string) (string, bool) {
	code = strings.ToUpper(code)
	for _, opt := range currencyCatalog {
		if opt.Code == code {
			return opt.Name, true
		}
	}
	return "", false
}

// PositionOptions returns the four positions in left, right, left_space,
// right_space order.
func PositionOptions() []PositionOption {
	out := make([]PositionOption, len(positionCatalog))
	copy(out, positionCatalog)
	return out
}
