package enrich

// languagePaths maps an ISO 639-1 target language to contact-page paths
// tried before the configured defaults. Ordering encodes where sites in
// that language actually publish contact emails: German-speaking sites,
// for example, are legally required to carry an Impressum, which is tried
// before a generic /contact.
var languagePaths = map[string][]string{
	"en": {"/contact", "/contact-us", "/about", "/about-us"},
	"de": {"/impressum", "/kontakt", "/ueber-uns", "/datenschutz"},
	"fr": {"/contact", "/nous-contacter", "/mentions-legales", "/a-propos"},
	"es": {"/contacto", "/sobre-nosotros", "/aviso-legal", "/quienes-somos"},
	"it": {"/contatti", "/chi-siamo", "/note-legali"},
	"pt": {"/contato", "/contactos", "/sobre", "/quem-somos"},
	"nl": {"/contact", "/over-ons", "/colofon"},
	"pl": {"/kontakt", "/o-nas", "/dane-kontaktowe"},
	"sv": {"/kontakt", "/om-oss", "/kontakta-oss"},
	"da": {"/kontakt", "/om-os"},
	"no": {"/kontakt", "/om-oss"},
	"fi": {"/yhteystiedot", "/ota-yhteytta", "/meista"},
	"cs": {"/kontakt", "/o-nas", "/kontakty"},
	"tr": {"/iletisim", "/hakkimizda"},
	"ru": {"/kontakty", "/o-nas", "/contacts"},
	"ja": {"/contact", "/company", "/about", "/otoiawase"},
	"zh": {"/contact", "/lianxi", "/about", "/guanyu"},
}

// contactPaths builds the ordered, deduplicated path list for a lookup:
// target-language paths first, then the configured defaults.
func contactPaths(targetLanguage string, defaults []string) []string {
	seen := make(map[string]struct{})
	var paths []string

	appendPath := func(p string) {
		if p == "" {
			return
		}
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, p := range languagePaths[targetLanguage] {
		appendPath(p)
	}
	for _, p := range defaults {
		appendPath(p)
	}
	return paths
}
