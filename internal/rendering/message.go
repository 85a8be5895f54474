// Package rendering wraps generated text in the fixed email and SMS boilerplate.
package rendering

import (
	"fmt"

	"github.com/jonathan/ad-generator/internal/types"
)

// emailBoilerplate is the fixed text surrounding a generated email body.
type emailBoilerplate struct {
	Subject    string
	Salutation string
	Conclusion string
	Contact    string
	Regards    string
}

var emailTemplates = map[types.Language]emailBoilerplate{
	types.English: {
		Subject:    "Exciting New Program at Humber College!",
		Salutation: "Dear Prospective Student,",
		Conclusion: "Don't miss out on this amazing opportunity. Apply now and embark on a journey to a brighter future!",
		Contact:    " If you have any question contact us on +1.416.675.5067 or international.humber.ca/contact",
		Regards:    "Regards,\nHumber College Institute of Technology and Advanced Learning",
	},
	types.French: {
		Subject:    "Nouveau programme passionnant au Collège Humber !",
		Salutation: "Cher futur étudiant,",
		Conclusion: "Ne manquez pas cette incroyable opportunité. Postulez dès maintenant et embarquez pour un avenir plus radieux !",
		Contact:    "Si vous avez des questions, contactez-nous au +1.416.675.5067 ou international.humber.ca/contact",
		Regards:    "Cordialement,\nL'équipe du Collège Humber",
	},
}

var smsIntros = map[types.Language]string{
	types.English: "Discover exciting opportunities at Humber College!",
	types.French:  "Découvrez des opportunités passionnantes au Collège Humber !",
}

// Render wraps raw generated text with the boilerplate for kind and language.
// The raw text always appears unchanged as a contiguous substring of the result.
// Render panics on a kind outside types.Kinds(); requests are validated before they get here.
func Render(kind types.Kind, raw string, language types.Language) string {
	switch kind {
	case types.KindEmail:
		b := emailTemplates[normalize(language)]
		return fmt.Sprintf("Subject: %s\n\n%s\n\n%s\n\n%s\n\n%s\n\n%s",
			b.Subject, b.Salutation, raw, b.Conclusion, b.Contact, b.Regards)
	case types.KindSMS:
		return fmt.Sprintf("%s\n\n%s", smsIntros[normalize(language)], raw)
	default:
		panic(fmt.Sprintf("rendering.Render called with unknown kind %q", kind))
	}
}

// Heading returns the title displayed above a generated advertisement.
func Heading(kind types.Kind, language types.Language, tone types.Tone) string {
	if normalize(language) == types.French {
		switch kind {
		case types.KindSMS:
			return fmt.Sprintf("Publicité SMS %s générée :", tone)
		default:
			return fmt.Sprintf("Publicité par courrier électronique %s générée :", tone)
		}
	}
	return fmt.Sprintf("Generated %s %s Advertisement:", tone, kind.Label())
}

// RevisionHeading returns the title displayed above an advertisement regenerated from feedback.
func RevisionHeading(kind types.Kind, language types.Language) string {
	if normalize(language) == types.French {
		if kind == types.KindSMS {
			return "Nouvelle publicité SMS générée :"
		}
		return "Nouvelle publicité par courrier électronique générée :"
	}
	return fmt.Sprintf("New Generated %s Advertisement:", kind.Label())
}

// normalize maps unknown languages to English so the boilerplate lookups never miss.
func normalize(language types.Language) types.Language {
	if language == types.French {
		return types.French
	}
	return types.English
}
