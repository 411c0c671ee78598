package constant

const (
	ChatMessageRoleHuman     = "human"
	ChatMessageRoleAssistant = "assistant"

	// Session types mirror the intent vocabulary; a session keeps the type
	// it was created with until the user confirms a redirect.
	SessionTypeGeneral     = "GENERAL"
	SessionTypePlanner     = "PLANNER"
	SessionTypeStudy       = "STUDY"
	SessionTypeExamReview  = "EXAM_REVIEW"
	SessionTypeEssayReview = "ESSAY_REVIEW"
	SessionTypeSpeaking    = "SPEAKING"

	IntentQna      = "qna"
	IntentPlanner  = "planner"
	IntentLearning = "learning"
	IntentReviewer = "reviewer"
	IntentSpeaking = "speaking"

	// Default name given to sessions the dispatcher spins up on its own.
	// The title consumer only renames sessions still carrying this prefix.
	DefaultSessionNamePrefix = "Session "

	UnsupportedIntentReply = "Sorry, this feature is not supported yet."
)

// IntentVocabulary is the fixed set the classifier may return. Anything
// outside it resolves to IntentQna.
var IntentVocabulary = []string{
	IntentQna,
	IntentPlanner,
	IntentLearning,
	IntentReviewer,
	IntentSpeaking,
}

// SessionTypeForIntent maps a classified intent to the session type tag
// stored on new sessions. Every intent must round-trip through
// IntentForSessionType, or a session stops reaching its own handler
// after the first turn.
var SessionTypeForIntent = map[string]string{
	IntentQna:      SessionTypeGeneral,
	IntentPlanner:  SessionTypePlanner,
	IntentLearning: SessionTypeStudy,
	IntentReviewer: SessionTypeExamReview,
	IntentSpeaking: SessionTypeSpeaking,
}

// IntentForSessionType is the reverse mapping used when an existing
// session's stored type decides the handler.
var IntentForSessionType = map[string]string{
	SessionTypeGeneral:     IntentQna,
	SessionTypePlanner:     IntentPlanner,
	SessionTypeStudy:       IntentLearning,
	SessionTypeExamReview:  IntentReviewer,
	SessionTypeEssayReview: IntentReviewer,
	SessionTypeSpeaking:    IntentSpeaking,
}
