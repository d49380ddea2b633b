package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	httpx "github.com/go-quizhub/quizhub/pkg/http"
	"github.com/go-quizhub/quizhub/pkg/log"
)

func (rt *Router) quizRouter(r fiber.Router, auth fiber.Handler) {
	quizGroup := r.Group("/quiz", auth)
	{
		quizGroup.Post("/create", rt.createQuiz)
		quizGroup.Get("/company/:companyId", rt.listQuizzes)
		quizGroup.Get("/:quizId", rt.getQuiz)
		quizGroup.Put("/:quizId", rt.updateQuiz)
		quizGroup.Delete("/:quizId", rt.deleteQuiz)

		quizGroup.Post("/:quizId/question", rt.addQuestion)
		quizGroup.Put("/question/:questionId", rt.updateQuestion)
		quizGroup.Delete("/question/:questionId", rt.deleteQuestion)

		quizGroup.Post("/question/:questionId/answer", rt.addAnswer)
		quizGroup.Put("/answer/:answerId", rt.updateAnswer)
		quizGroup.Delete("/answer/:answerId", rt.deleteAnswer)

		quizGroup.Post("/:quizId/attempt", rt.submitAttempt)
	}
}

func (rt *Router) createQuiz(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	var req model.CreateQuizReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create quiz failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	quiz, err := rt.Services.Quiz.CreateQuiz(&req, actor)
	if err != nil {
		log.Errorf("create quiz failed: %v", err)
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, quiz)
}

func (rt *Router) listQuizzes(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	companyId := c.Params("companyId")
	if companyId == "" {
		return httpx.WithRepErrMsg(c, httpx.CompanyIdIsEmpty.Code, httpx.CompanyIdIsEmpty.Msg, c.Path())
	}
	quizzes, err := rt.Services.Quiz.ListQuizzes(companyId, actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, quizzes)
}

func (rt *Router) getQuiz(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	quizId := c.Params("quizId")
	if quizId == "" {
		return httpx.WithRepErrMsg(c, httpx.QuizIdIsEmpty.Code, httpx.QuizIdIsEmpty.Msg, c.Path())
	}
	detail, err := rt.Services.Quiz.GetQuiz(quizId, actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, detail)
}

func (rt *Router) updateQuiz(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	quizId := c.Params("quizId")
	if quizId == "" {
		return httpx.WithRepErrMsg(c, httpx.QuizIdIsEmpty.Code, httpx.QuizIdIsEmpty.Msg, c.Path())
	}
	var req model.UpdateQuizReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update quiz failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.Quiz.UpdateQuiz(quizId, actor, &req); err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) deleteQuiz(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	quizId := c.Params("quizId")
	if quizId == "" {
		return httpx.WithRepErrMsg(c, httpx.QuizIdIsEmpty.Code, httpx.QuizIdIsEmpty.Msg, c.Path())
	}
	if err := rt.Services.Quiz.DeleteQuiz(quizId, actor); err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) addQuestion(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	quizId := c.Params("quizId")
	if quizId == "" {
		return httpx.WithRepErrMsg(c, httpx.QuizIdIsEmpty.Code, httpx.QuizIdIsEmpty.Msg, c.Path())
	}
	var req model.CreateQuestionReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("add question failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	question, err := rt.Services.Quiz.AddQuestion(quizId, actor, &req)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, question)
}

func (rt *Router) updateQuestion(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	var req model.UpdateQuestionReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update question failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.Quiz.UpdateQuestion(c.Params("questionId"), actor, &req); err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) deleteQuestion(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	if err := rt.Services.Quiz.DeleteQuestion(c.Params("questionId"), actor); err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) addAnswer(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	var req model.CreateAnswerReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("add answer failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	answer, err := rt.Services.Quiz.AddAnswer(c.Params("questionId"), actor, &req)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, answer)
}

func (rt *Router) updateAnswer(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	var req model.UpdateAnswerReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update answer failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.Quiz.UpdateAnswer(c.Params("answerId"), actor, &req); err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) deleteAnswer(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	if err := rt.Services.Quiz.DeleteAnswer(c.Params("answerId"), actor); err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) submitAttempt(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	quizId := c.Params("quizId")
	if quizId == "" {
		return httpx.WithRepErrMsg(c, httpx.QuizIdIsEmpty.Code, httpx.QuizIdIsEmpty.Msg, c.Path())
	}
	var req model.SubmitAttemptReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("submit attempt failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	result, err := rt.Services.Result.SubmitAttempt(quizId, actor, &req)
	if err != nil {
		log.Errorf("submit attempt failed: %v", err)
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, result)
}
