package shared

const (
	UserID  = "user_id"
	IsGuest = "is_guest"

	AccountTypeGuest      = "guest"
	AccountTypeRegistered = "registered"
	AccountTypeGoogle     = "google"

	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"

	MessageTypeText  = "text"
	MessageTypeImage = "image"

	RequirementQuestionsAsked    = "questions_asked"
	RequirementAnimalsExplored   = "animals_explored"
	RequirementImagesGenerated   = "images_generated"
	RequirementStreakDays        = "streak_days"
	RequirementTotalPoints       = "total_points"
	RequirementSessionsCompleted = "sessions_completed"
)
