package kv

// Key layout shared by the repositories.
const (
	UsersByEmailKey = "users_by_email"
)

// UserKey is the hash holding a user record.
func UserKey(userID string) string {
	return "user:" + userID
}

// ResumeKey is the hash holding a resume record.
func ResumeKey(resumeID string) string {
	return "resume:" + resumeID
}

// UserResumesKey is the set of resume ids owned by a user.
func UserResumesKey(userID string) string {
	return "user_resumes:" + userID
}
