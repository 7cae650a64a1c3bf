// Package format renders message templates and post content for a
// community site.
//
// Message templates carry placeholders of the form {Field} or
// {Field,format,arg,arg} that are substituted against a data map.
// The format verbs cover dates, numbers, currencies, percentages,
// plurals, gendered words, site URLs, and user references rendered as
// profile links. Doubling the opening brace ("{{") emits a literal
// brace, and malformed placeholders pass through verbatim so a bad
// template never hides its own mistake.
//
// # Basic Usage
//
//	f, err := format.New(
//		format.WithSite(site),
//		format.WithTranslator(tr),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	msg := f.FormatString(ctx, "{Name} posted {Count,plural,a comment,%s comments}.", format.M{
//		"Name":  "alice",
//		"Count": 3,
//	})
//	// "alice posted 3 comments."
//
// # Dates and Numbers
//
// Date placeholders accept the named styles short, medium, and long,
// or any Go time layout:
//
//	{Inserted,date}            02/07/2026
//	{Inserted,date,long}       February 7, 2026
//	{Inserted,date,Jan 2006}   Feb 2026
//	{Price,currency}           $1,234.50
//	{Rate,percent}             12.5%
//	{Total,number,2}           1,234.57
//
// # User References
//
// The user, you, his, her, and your formats resolve user records
// through the configured UserResolver and render each as a profile
// anchor. When the referenced user is the viewing user (see Viewer),
// "you" and "your" substitute the second person:
//
//	activity := f.Viewer(sessionUserID)
//	activity.FormatString(ctx, "{InsertUserID,You} liked {RecordUserID,your} photo.", data)
//
// Lists of users join with commas and "and"; lists longer than the
// configured maximum collapse the tail into "and N others".
//
// # Post Content
//
// PlainText, Excerpt, HTML, and Markdown convert stored post bodies
// for display. HTML output is sanitized down to basic formatting
// markup, markdown is rendered with bare-link autolinking first, and
// both pass mentions through the linker configured with
// WithMentionLinker.
package format
