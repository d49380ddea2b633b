package consts

// Redis key prefixes
const (
	UserTokenKey  = "quizhub:token:"
	UserInfoKey   = "quizhub:userinfo:"
	AnswerKey     = "answer:"
)

// AnswerCacheKey builds the cache key for one submitted answer:
// answer:{user_id}:{company_id}:{quiz_id}:{question_id}
func AnswerCacheKey(userId, companyId, quizId, questionId string) string {
	return AnswerKey + userId + ":" + companyId + ":" + quizId + ":" + questionId
}

// AnswerUserPrefix is the scan prefix covering every cached answer of a user.
func AnswerUserPrefix(userId string) string {
	return AnswerKey + userId + ":"
}
