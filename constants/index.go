package constants

// Flight statuses
const (
	FLIGHT_SCHEDULED = "SCHEDULED"
	FLIGHT_DEPARTED  = "DEPARTED"
)

// Search result kinds
const (
	SEARCH_KIND_MISSION = "mission"
	SEARCH_KIND_CREW    = "crew_member"
)

// Error messages
const (
	ERROR_INTERNAL_ERROR  = "Internal server error"
	MISSING_LOGIN_INPUT   = "Email and password are required"
	LOGIN_FAILED          = "Login failed"
	EMAIL_EXISTS          = "Email already exists"
	WEAK_PASSWORD         = "Password must contain at least 3 characters, including lowercase, uppercase and digit"
	NO_SEATS_AVAILABLE    = "No seats available"
	ALREADY_BOOKED        = "You have already booked this flight"
	FLIGHT_NUMBER_EXISTS  = "Flight number already exists"
	MISSION_NAME_EXISTS   = "Mission name already exists"
	MISSION_UPDATE_RACE   = "Mission was modified by another request"
	WATERMARK_MESSAGE_LEN = "Message must be between 10 and 20 characters"
)
