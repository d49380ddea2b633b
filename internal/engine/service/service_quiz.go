package service

import (
	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/internal/engine/repo"
	"github.com/go-quizhub/quizhub/pkg/errs"
	"github.com/go-quizhub/quizhub/pkg/id"
	"github.com/go-quizhub/quizhub/pkg/log"
)

// QuizService owns quiz authoring. Creation is all-or-nothing: the quiz, its
// questions and its answers land in one transaction or not at all.
type QuizService struct {
	repos      *repo.Repositories
	permission *PermissionService
}

func NewQuizService(repos *repo.Repositories, permission *PermissionService) *QuizService {
	return &QuizService{repos: repos, permission: permission}
}

// QuizDetail is a quiz with its full question and answer tree.
type QuizDetail struct {
	Quiz      model.Quiz       `json:"quiz"`
	Questions []QuestionDetail `json:"questions"`
}

type QuestionDetail struct {
	Question model.Question `json:"question"`
	Answers  []model.Answer `json:"answers"`
}

func (s *QuizService) CreateQuiz(req *model.CreateQuizReq, actor *model.User) (*model.Quiz, error) {
	company, err := s.loadCompany(req.CompanyId)
	if err != nil {
		return nil, err
	}
	if err := s.permission.HasQuizAccess(company, actor); err != nil {
		return nil, err
	}
	if err := validateQuizStructure(req); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		QuizId:        id.GetUUID(),
		CompanyId:     req.CompanyId,
		QuizName:      req.QuizName,
		QuizTitle:     req.QuizTitle,
		Description:   req.Description,
		QuizFrequency: req.QuizFrequency,
		CreatedBy:     actor.UserId,
		UpdatedBy:     actor.UserId,
	}

	err = s.repos.Atomic(func(tx *repo.Repositories) error {
		existing, err := tx.Quiz.GetQuizByName(req.CompanyId, req.QuizName)
		if err != nil {
			return errs.Wrap(err, "check quiz name failed")
		}
		if existing != nil {
			return errs.Conflictf("quiz name %q already exists in this company", req.QuizName)
		}
		if err := tx.Quiz.AddQuiz(quiz); err != nil {
			return errs.Wrap(err, "create quiz failed")
		}
		for _, q := range req.Questions {
			question := &model.Question{
				QuestionId:   id.GetUUID(),
				QuizId:       quiz.QuizId,
				CompanyId:    quiz.CompanyId,
				QuestionText: q.QuestionText,
			}
			if err := tx.Question.AddQuestion(question); err != nil {
				return errs.Wrap(err, "create question failed")
			}
			for _, a := range q.Answers {
				answer := &model.Answer{
					AnswerId:   id.GetUUID(),
					QuestionId: question.QuestionId,
					AnswerData: a.AnswerData,
					IsCorrect:  a.IsCorrect,
				}
				if err := tx.Answer.AddAnswer(answer); err != nil {
					return errs.Wrap(err, "create answer failed")
				}
			}
		}

		// Announce the new quiz to every member.
		members, err := tx.Member.ListCompanyMembers(quiz.CompanyId)
		if err != nil {
			return errs.Wrap(err, "list members failed")
		}
		notifications := make([]model.Notification, 0, len(members))
		for _, m := range members {
			notifications = append(notifications, model.Notification{
				NotificationId:   id.GetUUID(),
				ReceiverId:       m.UserId,
				Status:           model.NotificationStatusSent,
				NotificationData: "New quiz \"" + quiz.QuizName + "\" is available in your company",
			})
		}
		if err := tx.Notification.AddNotifications(notifications); err != nil {
			return errs.Wrap(err, "create notifications failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Infow("quiz created", "quizId", quiz.QuizId, "companyId", quiz.CompanyId, "questions", len(req.Questions))
	return quiz, nil
}

// validateQuizStructure enforces the authoring minimums and distinctness rules
// on the request before anything is written.
func validateQuizStructure(req *model.CreateQuizReq) error {
	if req.QuizName == "" {
		return errs.Conflict("quiz name cannot be empty")
	}
	if req.QuizFrequency < 0 {
		return errs.Conflict("quiz frequency cannot be negative")
	}
	if len(req.Questions) < model.MinQuestionsPerQuiz {
		return errs.Conflictf("a quiz needs at least %d questions", model.MinQuestionsPerQuiz)
	}
	questionTexts := make(map[string]bool, len(req.Questions))
	for _, q := range req.Questions {
		if q.QuestionText == "" {
			return errs.Conflict("question text cannot be empty")
		}
		if questionTexts[q.QuestionText] {
			return errs.Conflictf("duplicate question text %q", q.QuestionText)
		}
		questionTexts[q.QuestionText] = true

		if len(q.Answers) < model.MinAnswersPerQuestion {
			return errs.Conflictf("question %q needs at least %d answers", q.QuestionText, model.MinAnswersPerQuestion)
		}
		answerTexts := make(map[string]bool, len(q.Answers))
		hasCorrect := false
		for _, a := range q.Answers {
			if a.AnswerData == "" {
				return errs.Conflict("answer text cannot be empty")
			}
			if answerTexts[a.AnswerData] {
				return errs.Conflictf("duplicate answer %q in question %q", a.AnswerData, q.QuestionText)
			}
			answerTexts[a.AnswerData] = true
			if a.IsCorrect {
				hasCorrect = true
			}
		}
		if !hasCorrect {
			return errs.Conflictf("question %q has no correct answer", q.QuestionText)
		}
	}
	return nil
}

func (s *QuizService) GetQuiz(quizId string, actor *model.User) (*QuizDetail, error) {
	quiz, _, err := s.loadQuizWithAccess(quizId, actor)
	if err != nil {
		return nil, err
	}

	questions, err := s.repos.Question.ListQuestionsByQuiz(quiz.QuizId)
	if err != nil {
		return nil, errs.Wrap(err, "list questions failed")
	}
	detail := &QuizDetail{Quiz: *quiz, Questions: make([]QuestionDetail, 0, len(questions))}
	for _, q := range questions {
		answers, err := s.repos.Answer.ListAnswersByQuestion(q.QuestionId)
		if err != nil {
			return nil, errs.Wrap(err, "list answers failed")
		}
		detail.Questions = append(detail.Questions, QuestionDetail{Question: q, Answers: answers})
	}
	return detail, nil
}

func (s *QuizService) ListQuizzes(companyId string, actor *model.User) ([]model.Quiz, error) {
	company, err := s.loadCompany(companyId)
	if err != nil {
		return nil, err
	}
	if err := s.permission.HasQuizAccess(company, actor); err != nil {
		return nil, err
	}
	return s.repos.Quiz.ListQuizzesByCompany(companyId)
}

func (s *QuizService) UpdateQuiz(quizId string, actor *model.User, req *model.UpdateQuizReq) error {
	quiz, _, err := s.loadQuizWithAccess(quizId, actor)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.QuizTitle != nil {
		fields["quiz_title"] = *req.QuizTitle
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.QuizFrequency != nil {
		if *req.QuizFrequency < 0 {
			return errs.Conflict("quiz frequency cannot be negative")
		}
		fields["quiz_frequency"] = *req.QuizFrequency
	}
	if len(fields) == 0 {
		return nil
	}
	fields["updated_by"] = actor.UserId
	return s.repos.Quiz.UpdateQuiz(quiz.QuizId, fields)
}

// DeleteQuiz cascades over questions, answers and results.
func (s *QuizService) DeleteQuiz(quizId string, actor *model.User) error {
	quiz, _, err := s.loadQuizWithAccess(quizId, actor)
	if err != nil {
		return err
	}
	err = s.repos.Atomic(func(tx *repo.Repositories) error {
		questions, err := tx.Question.ListQuestionsByQuiz(quiz.QuizId)
		if err != nil {
			return errs.Wrap(err, "list questions failed")
		}
		for _, q := range questions {
			if err := tx.Answer.DeleteAnswersByQuestion(q.QuestionId); err != nil {
				return errs.Wrap(err, "delete answers failed")
			}
		}
		if err := tx.Question.DeleteQuestionsByQuiz(quiz.QuizId); err != nil {
			return errs.Wrap(err, "delete questions failed")
		}
		if err := tx.Result.DeleteResultsByQuiz(quiz.QuizId); err != nil {
			return errs.Wrap(err, "delete results failed")
		}
		return tx.Quiz.DeleteQuiz(quiz.QuizId)
	})
	if err != nil {
		return err
	}
	log.Infow("quiz deleted", "quizId", quiz.QuizId, "actor", actor.UserId)
	return nil
}

func (s *QuizService) AddQuestion(quizId string, actor *model.User, req *model.CreateQuestionReq) (*model.Question, error) {
	quiz, _, err := s.loadQuizWithAccess(quizId, actor)
	if err != nil {
		return nil, err
	}
	if req.QuestionText == "" {
		return nil, errs.Conflict("question text cannot be empty")
	}
	if len(req.Answers) < model.MinAnswersPerQuestion {
		return nil, errs.Conflictf("a question needs at least %d answers", model.MinAnswersPerQuestion)
	}
	answerTexts := make(map[string]bool, len(req.Answers))
	hasCorrect := false
	for _, a := range req.Answers {
		if answerTexts[a.AnswerData] {
			return nil, errs.Conflictf("duplicate answer %q", a.AnswerData)
		}
		answerTexts[a.AnswerData] = true
		if a.IsCorrect {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return nil, errs.Conflict("a question needs at least one correct answer")
	}

	question := &model.Question{
		QuestionId:   id.GetUUID(),
		QuizId:       quiz.QuizId,
		CompanyId:    quiz.CompanyId,
		QuestionText: req.QuestionText,
	}
	err = s.repos.Atomic(func(tx *repo.Repositories) error {
		existing, err := tx.Question.ListQuestionsByQuiz(quiz.QuizId)
		if err != nil {
			return errs.Wrap(err, "list questions failed")
		}
		for _, q := range existing {
			if q.QuestionText == req.QuestionText {
				return errs.Conflictf("duplicate question text %q", req.QuestionText)
			}
		}
		if err := tx.Question.AddQuestion(question); err != nil {
			return errs.Wrap(err, "create question failed")
		}
		for _, a := range req.Answers {
			answer := &model.Answer{
				AnswerId:   id.GetUUID(),
				QuestionId: question.QuestionId,
				AnswerData: a.AnswerData,
				IsCorrect:  a.IsCorrect,
			}
			if err := tx.Answer.AddAnswer(answer); err != nil {
				return errs.Wrap(err, "create answer failed")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) UpdateQuestion(questionId string, actor *model.User, req *model.UpdateQuestionReq) error {
	question, err := s.loadQuestion(questionId)
	if err != nil {
		return err
	}
	if _, _, err := s.loadQuizWithAccess(question.QuizId, actor); err != nil {
		return err
	}
	if req.QuestionText == nil {
		return nil
	}
	if *req.QuestionText == "" {
		return errs.Conflict("question text cannot be empty")
	}
	siblings, err := s.repos.Question.ListQuestionsByQuiz(question.QuizId)
	if err != nil {
		return errs.Wrap(err, "list questions failed")
	}
	for _, q := range siblings {
		if q.QuestionId != questionId && q.QuestionText == *req.QuestionText {
			return errs.Conflictf("duplicate question text %q", *req.QuestionText)
		}
	}
	return s.repos.Question.UpdateQuestion(questionId, map[string]interface{}{
		"question_text": *req.QuestionText,
	})
}

// DeleteQuestion refuses to shrink a quiz below the minimum question count.
func (s *QuizService) DeleteQuestion(questionId string, actor *model.User) error {
	question, err := s.loadQuestion(questionId)
	if err != nil {
		return err
	}
	if _, _, err := s.loadQuizWithAccess(question.QuizId, actor); err != nil {
		return err
	}
	return s.repos.Atomic(func(tx *repo.Repositories) error {
		count, err := tx.Question.CountQuestionsByQuiz(question.QuizId)
		if err != nil {
			return errs.Wrap(err, "count questions failed")
		}
		if count <= model.MinQuestionsPerQuiz {
			return errs.Conflictf("a quiz must keep at least %d questions", model.MinQuestionsPerQuiz)
		}
		if err := tx.Answer.DeleteAnswersByQuestion(questionId); err != nil {
			return errs.Wrap(err, "delete answers failed")
		}
		return tx.Question.DeleteQuestion(questionId)
	})
}

func (s *QuizService) AddAnswer(questionId string, actor *model.User, req *model.CreateAnswerReq) (*model.Answer, error) {
	question, err := s.loadQuestion(questionId)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.loadQuizWithAccess(question.QuizId, actor); err != nil {
		return nil, err
	}
	if req.AnswerData == "" {
		return nil, errs.Conflict("answer text cannot be empty")
	}
	answer := &model.Answer{
		AnswerId:   id.GetUUID(),
		QuestionId: questionId,
		AnswerData: req.AnswerData,
		IsCorrect:  req.IsCorrect,
	}
	err = s.repos.Atomic(func(tx *repo.Repositories) error {
		siblings, err := tx.Answer.ListAnswersByQuestion(questionId)
		if err != nil {
			return errs.Wrap(err, "list answers failed")
		}
		for _, a := range siblings {
			if a.AnswerData == req.AnswerData {
				return errs.Conflictf("duplicate answer %q", req.AnswerData)
			}
		}
		return tx.Answer.AddAnswer(answer)
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

// UpdateAnswer refuses to unflag the last correct answer of a question.
func (s *QuizService) UpdateAnswer(answerId string, actor *model.User, req *model.UpdateAnswerReq) error {
	answer, err := s.loadAnswer(answerId)
	if err != nil {
		return err
	}
	question, err := s.loadQuestion(answer.QuestionId)
	if err != nil {
		return err
	}
	if _, _, err := s.loadQuizWithAccess(question.QuizId, actor); err != nil {
		return err
	}

	return s.repos.Atomic(func(tx *repo.Repositories) error {
		fields := map[string]interface{}{}
		if req.AnswerData != nil {
			if *req.AnswerData == "" {
				return errs.Conflict("answer text cannot be empty")
			}
			siblings, err := tx.Answer.ListAnswersByQuestion(answer.QuestionId)
			if err != nil {
				return errs.Wrap(err, "list answers failed")
			}
			for _, a := range siblings {
				if a.AnswerId != answerId && a.AnswerData == *req.AnswerData {
					return errs.Conflictf("duplicate answer %q", *req.AnswerData)
				}
			}
			fields["answer_data"] = *req.AnswerData
		}
		if req.IsCorrect != nil {
			if answer.IsCorrect && !*req.IsCorrect {
				others, err := s.countOtherCorrect(tx, answer)
				if err != nil {
					return err
				}
				if others == 0 {
					return errs.Conflict("a question needs at least one correct answer")
				}
			}
			fields["is_correct"] = *req.IsCorrect
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.Answer.UpdateAnswer(answerId, fields)
	})
}

// DeleteAnswer keeps the minimum answer count and at least one correct answer.
func (s *QuizService) DeleteAnswer(answerId string, actor *model.User) error {
	answer, err := s.loadAnswer(answerId)
	if err != nil {
		return err
	}
	question, err := s.loadQuestion(answer.QuestionId)
	if err != nil {
		return err
	}
	if _, _, err := s.loadQuizWithAccess(question.QuizId, actor); err != nil {
		return err
	}

	return s.repos.Atomic(func(tx *repo.Repositories) error {
		count, err := tx.Answer.CountAnswersByQuestion(answer.QuestionId)
		if err != nil {
			return errs.Wrap(err, "count answers failed")
		}
		if count <= model.MinAnswersPerQuestion {
			return errs.Conflictf("a question must keep at least %d answers", model.MinAnswersPerQuestion)
		}
		if answer.IsCorrect {
			others, err := s.countOtherCorrect(tx, answer)
			if err != nil {
				return err
			}
			if others == 0 {
				return errs.Conflict("cannot delete the last correct answer")
			}
		}
		return tx.Answer.DeleteAnswer(answerId)
	})
}

func (s *QuizService) countOtherCorrect(tx *repo.Repositories, answer *model.Answer) (int, error) {
	siblings, err := tx.Answer.ListAnswersByQuestion(answer.QuestionId)
	if err != nil {
		return 0, errs.Wrap(err, "list answers failed")
	}
	others := 0
	for _, a := range siblings {
		if a.AnswerId != answer.AnswerId && a.IsCorrect {
			others++
		}
	}
	return others, nil
}

func (s *QuizService) loadCompany(companyId string) (*model.Company, error) {
	if companyId == "" {
		return nil, errs.Conflict("company id cannot be empty")
	}
	company, err := s.repos.Company.GetCompanyById(companyId)
	if err != nil {
		return nil, errs.Wrap(err, "load company failed")
	}
	if company == nil {
		return nil, errs.NotFound("company not found")
	}
	return company, nil
}

func (s *QuizService) loadQuizWithAccess(quizId string, actor *model.User) (*model.Quiz, *model.Company, error) {
	if quizId == "" {
		return nil, nil, errs.Conflict("quiz id cannot be empty")
	}
	quiz, err := s.repos.Quiz.GetQuizById(quizId)
	if err != nil {
		return nil, nil, errs.Wrap(err, "load quiz failed")
	}
	if quiz == nil {
		return nil, nil, errs.NotFound("quiz not found")
	}
	company, err := s.loadCompany(quiz.CompanyId)
	if err != nil {
		return nil, nil, err
	}
	if err := s.permission.HasQuizAccess(company, actor); err != nil {
		return nil, nil, err
	}
	return quiz, company, nil
}

func (s *QuizService) loadQuestion(questionId string) (*model.Question, error) {
	question, err := s.repos.Question.GetQuestionById(questionId)
	if err != nil {
		return nil, errs.Wrap(err, "load question failed")
	}
	if question == nil {
		return nil, errs.NotFound("question not found")
	}
	return question, nil
}

func (s *QuizService) loadAnswer(answerId string) (*model.Answer, error) {
	answer, err := s.repos.Answer.GetAnswerById(answerId)
	if err != nil {
		return nil, errs.Wrap(err, "load answer failed")
	}
	if answer == nil {
		return nil, errs.NotFound("answer not found")
	}
	return answer, nil
}
