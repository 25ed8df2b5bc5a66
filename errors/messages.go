package errors

import "golang.org/x/text/language"

// DefaultLanguage is used when the client does not ask for a supported language
const DefaultLanguage = "de"

var catalog = map[string]map[ErrorCode]string{
	"de": {
		ErrorCode_INTERNAL:                   "Ein unerwarteter Fehler ist aufgetreten. Bitte versuchen Sie es erneut.",
		ErrorCode_INVALID_ARGUMENT:           "Ungültige Eingabe.",
		ErrorCode_INVALID_PAYLOAD:            "Die Anfrage konnte nicht gelesen werden.",
		ErrorCode_NOT_FOUND:                  "Der Eintrag wurde nicht gefunden.",
		ErrorCode_ALREADY_EXISTS:             "Der Eintrag existiert bereits.",
		ErrorCode_PERMISSION_DENIED:          "Zugriff verweigert.",
		ErrorCode_UNAUTHENTICATED:            "Bitte melden Sie sich an.",
		ErrorCode_AUTH_INVALID_TOKEN:         "Ihre Sitzung ist ungültig. Bitte melden Sie sich erneut an.",
		ErrorCode_MEETING_NOT_FOUND:          "Die Versammlung wurde nicht gefunden.",
		ErrorCode_MEETING_INVALID_STATE:      "Die Versammlung befindet sich nicht im passenden Status.",
		ErrorCode_MEETING_COMPLETED:          "Die Versammlung ist bereits abgeschlossen.",
		ErrorCode_AGENDA_ITEM_NOT_FOUND:      "Der Tagesordnungspunkt wurde nicht gefunden.",
		ErrorCode_PROPERTY_NOT_FOUND:         "Die Liegenschaft wurde nicht gefunden.",
		ErrorCode_PARTICIPANTS_ALREADY_EXIST: "Die Teilnehmerliste wurde bereits erstellt.",
		ErrorCode_NO_VOTING_UNITS:            "Für diese Liegenschaft sind keine Einheiten mit Eigentümern hinterlegt.",
		ErrorCode_PARTICIPANT_NOT_FOUND:      "Der Teilnehmer wurde nicht gefunden.",
		ErrorCode_LEADERS_NOT_CONFIRMED:      "Bitte bestätigen Sie zuerst die Versammlungsleitung.",
		ErrorCode_PARTICIPANTS_NOT_CONFIRMED: "Bitte bestätigen Sie zuerst die Teilnehmer.",
		ErrorCode_CHAIR_REQUIRED:             "Es muss mindestens ein Versammlungsleiter angegeben werden.",
		ErrorCode_ATTENDANCE_INVALID:         "Ungültiger Anwesenheitsstatus.",
		ErrorCode_RESOLUTION_NOT_FOUND:       "Der Beschluss wurde nicht gefunden.",
		ErrorCode_VOTE_CHOICE_INVALID:        "Ungültige Stimmabgabe. Erlaubt sind Ja, Nein oder Enthaltung.",
		ErrorCode_RESOLUTION_NOT_REQUIRED:    "Für diesen Tagesordnungspunkt ist kein Beschluss vorgesehen.",
		ErrorCode_VOTE_REQUIRED:              "Für diesen Tagesordnungspunkt ist eine Abstimmung erforderlich.",
		ErrorCode_INTEGRATION_STORAGE_FAILED: "Das Protokoll konnte nicht abgerufen werden.",
	},
	"en": {
		ErrorCode_INTERNAL:                   "An unexpected error occurred. Please try again.",
		ErrorCode_INVALID_ARGUMENT:           "Invalid input.",
		ErrorCode_INVALID_PAYLOAD:            "The request could not be read.",
		ErrorCode_NOT_FOUND:                  "The entry was not found.",
		ErrorCode_ALREADY_EXISTS:             "The entry already exists.",
		ErrorCode_PERMISSION_DENIED:          "Access denied.",
		ErrorCode_UNAUTHENTICATED:            "Please sign in.",
		ErrorCode_AUTH_INVALID_TOKEN:         "Your session is invalid. Please sign in again.",
		ErrorCode_MEETING_NOT_FOUND:          "The meeting was not found.",
		ErrorCode_MEETING_INVALID_STATE:      "The meeting is not in the required state.",
		ErrorCode_MEETING_COMPLETED:          "The meeting has already been completed.",
		ErrorCode_AGENDA_ITEM_NOT_FOUND:      "The agenda item was not found.",
		ErrorCode_PROPERTY_NOT_FOUND:         "The property was not found.",
		ErrorCode_PARTICIPANTS_ALREADY_EXIST: "The participant list has already been created.",
		ErrorCode_NO_VOTING_UNITS:            "This property has no units with owners.",
		ErrorCode_PARTICIPANT_NOT_FOUND:      "The participant was not found.",
		ErrorCode_LEADERS_NOT_CONFIRMED:      "Please confirm the meeting leaders first.",
		ErrorCode_PARTICIPANTS_NOT_CONFIRMED: "Please confirm the participants first.",
		ErrorCode_CHAIR_REQUIRED:             "At least one chair is required.",
		ErrorCode_ATTENDANCE_INVALID:         "Invalid attendance status.",
		ErrorCode_RESOLUTION_NOT_FOUND:       "The resolution was not found.",
		ErrorCode_VOTE_CHOICE_INVALID:        "Invalid vote. Allowed are yes, no or abstain.",
		ErrorCode_RESOLUTION_NOT_REQUIRED:    "This agenda item does not require a resolution.",
		ErrorCode_VOTE_REQUIRED:              "This agenda item requires a vote.",
		ErrorCode_INTEGRATION_STORAGE_FAILED: "The protocol could not be retrieved.",
	},
}

// Localize returns the user-facing message for code in the best matching
// language of an Accept-Language header value. Falls back to fallback.
func Localize(code ErrorCode, acceptLanguage, fallback string) string {
	lang := MatchLanguage(acceptLanguage)
	if msg, ok := catalog[lang][code]; ok {
		return msg
	}
	if fallback != "" {
		return fallback
	}
	return catalog[lang][ErrorCode_INTERNAL]
}

// supportedLanguages lists the catalog languages in matcher order; the first
// one is the fallback.
var (
	supportedLanguages = []string{DefaultLanguage, "en"}
	languageMatcher    = language.NewMatcher([]language.Tag{language.German, language.English})
)

// MatchLanguage picks the supported language that best fits an Accept-Language
// value, honoring quality weights. Unparsable values get DefaultLanguage.
func MatchLanguage(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return DefaultLanguage
	}
	return supportedLanguages[index]
}
