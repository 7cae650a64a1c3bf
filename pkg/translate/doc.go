// Package translate provides message definition lookup with
// default-string fallback, pluralization, and Accept-Language
// negotiation for community sites.
//
// The lookup model differs from key-based i18n systems: a message code
// is translated if the catalog carries a definition for it, and
// otherwise the caller's default string renders as-is. Untranslated
// sites therefore work before a single definition file exists, and
// translators override only the messages they care about.
//
// # Basic Usage
//
//	catalog, err := translate.New(
//		translate.WithDefinitions("fr", map[string]any{
//			"HomeTitle": "Accueil",
//		}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tr := translate.NewTranslator(catalog, "fr", nil)
//	tr.T("HomeTitle", "Home")   // "Accueil"
//	tr.T("About", "About Us")   // "About Us" (no definition, default wins)
//
// # Placeholders
//
// Definitions carry {{name}} placeholders:
//
//	tr.T("Welcome", "Welcome back, {{name}}!", translate.M{"name": "pat"})
//
// # Pluralization
//
// Plural picks the singular or plural code by the language's CLDR rule
// and injects {{count}}:
//
//	tr.Plural(1, "{{count}} comment", "{{count}} comments") // "1 comment"
//	tr.Plural(5, "{{count}} comment", "{{count}} comments") // "5 comments"
//
// # Definition Files
//
// Catalogs load YAML or JSON files from an fs.FS laid out as
// {lang}/{file}.yaml; nested maps flatten into dotted codes:
//
//	catalog, err := translate.New(
//		translate.WithYAMLDir(os.DirFS("locales")),
//		translate.WithDefaultLanguage("en"),
//	)
//
// # Language Negotiation
//
// NegotiateLanguage resolves an Accept-Language header against the
// catalog's languages:
//
//	lang := translate.NegotiateLanguage(r.Header.Get("Accept-Language"), catalog.Languages())
//	tr := translate.NewTranslator(catalog, lang, nil)
package translate
