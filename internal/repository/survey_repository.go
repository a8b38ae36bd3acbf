package repository

import (
	"surveyhub_backend/internal/model"

	"gorm.io/gorm"
)

type SurveyRepository struct {
	DB *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{DB: db}
}

// Create 在一个事务里写入问卷、按数组顺序编号的问题以及选择题的选项。
// options 与 questions 下标一一对应，任何一步失败整体回滚。
func (r *SurveyRepository) Create(survey *model.Survey, questions []model.Question, options [][]model.Option) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(survey).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].SurveyID = survey.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
			for j := range options[i] {
				options[i][j].QuestionID = questions[i].ID
				if err := tx.Create(&options[i][j]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *SurveyRepository) FindByID(id string) (*model.Survey, error) {
	var survey model.Survey
	err := r.DB.First(&survey, "id = ?", id).Error
	return &survey, err
}

type SurveyListRow struct {
	model.Survey
	CreatorName   string `json:"creator_name"`
	QuestionCount int    `json:"question_count"`
	ResponseCount int    `json:"response_count"`
}

// ListVisible 返回已发布问卷及创建者名、题目数和去重答卷人数。
// userID 非空时过滤掉调用者自己创建的和已回答过的问卷。
func (r *SurveyRepository) ListVisible(userID string) ([]SurveyListRow, error) {
	query := r.DB.Table("surveys s").
		Select("s.*, u.username AS creator_name, " +
			"(SELECT COUNT(*) FROM questions q WHERE q.survey_id = s.id) AS question_count, " +
			"(SELECT COUNT(DISTINCT r.user_id) FROM responses r WHERE r.survey_id = s.id) AS response_count").
		Joins("JOIN users u ON s.creator_id = u.id").
		Where("s.status = ?", model.SurveyPublished)

	if userID != "" {
		query = query.
			Where("s.creator_id <> ?", userID).
			Where("s.id NOT IN (SELECT DISTINCT survey_id FROM responses WHERE user_id = ?)", userID)
	}

	var rows []SurveyListRow
	err := query.Order("s.created_at DESC").Scan(&rows).Error
	return rows, err
}

func (r *SurveyRepository) ListByCreator(userID string) ([]model.Survey, error) {
	var surveys []model.Survey
	err := r.DB.Where("creator_id = ?", userID).Order("created_at DESC").Find(&surveys).Error
	return surveys, err
}

func (r *SurveyRepository) QuestionsBySurvey(surveyID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("survey_id = ?", surveyID).Order("question_order ASC").Find(&questions).Error
	return questions, err
}

func (r *SurveyRepository) OptionsBySurvey(surveyID string) ([]model.Option, error) {
	var opts []model.Option
	err := r.DB.Table("options o").
		Select("o.*").
		Joins("JOIN questions q ON o.question_id = q.id").
		Where("q.survey_id = ?", surveyID).
		Order("o.option_order ASC").
		Scan(&opts).Error
	return opts, err
}

func (r *SurveyRepository) InsertResponses(responses []model.Response) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range responses {
			if err := tx.Create(&responses[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceResponses 整体替换：先删掉该用户对问卷的全部旧回答再插入新回答
func (r *SurveyRepository) ReplaceResponses(surveyID, userID string, responses []model.Response) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ? AND user_id = ?", surveyID, userID).Delete(&model.Response{}).Error; err != nil {
			return err
		}
		for i := range responses {
			if err := tx.Create(&responses[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SurveyRepository) DeleteResponses(surveyID, userID string) error {
	return r.DB.Where("survey_id = ? AND user_id = ?", surveyID, userID).Delete(&model.Response{}).Error
}

// DeleteCascade 按依赖顺序删除：回答、选项（经问题关联）、问题、问卷
func (r *SurveyRepository) DeleteCascade(surveyID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", surveyID).Delete(&model.Response{}).Error; err != nil {
			return err
		}
		var questionIDs []string
		if err := tx.Model(&model.Question{}).Where("survey_id = ?", surveyID).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Option{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("survey_id = ?", surveyID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Survey{}, "id = ?", surveyID).Error
	})
}

func (r *SurveyRepository) ResponsesByUser(userID string) ([]model.Response, error) {
	var responses []model.Response
	err := r.DB.Where("user_id = ?", userID).Find(&responses).Error
	return responses, err
}

func (r *SurveyRepository) FindByIDs(ids []string) ([]model.Survey, error) {
	var surveys []model.Survey
	if len(ids) == 0 {
		return surveys, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&surveys).Error
	return surveys, err
}

type UserAnswerRow struct {
	QuestionID   string  `json:"question_id"`
	AnswerText   *string `json:"answer_text"`
	OptionID     *string `json:"option_id"`
	QuestionType string  `json:"question_type"`
}

// UserAnswers 某用户对某问卷的原始回答，带题型，用于编辑表单回填
func (r *SurveyRepository) UserAnswers(surveyID, userID string) ([]UserAnswerRow, error) {
	var rows []UserAnswerRow
	err := r.DB.Table("responses r").
		Select("r.question_id, r.answer_text, r.option_id, q.type AS question_type").
		Joins("JOIN questions q ON r.question_id = q.id").
		Where("r.survey_id = ? AND r.user_id = ?", surveyID, userID).
		Scan(&rows).Error
	return rows, err
}

type ResponseRow struct {
	QuestionID string
	UserID     string
	Username   string
	AnswerText *string
	OptionID   *string
}

// ResponsesWithUsernames 统计用的全量回答行，带答卷人用户名
func (r *SurveyRepository) ResponsesWithUsernames(surveyID string) ([]ResponseRow, error) {
	var rows []ResponseRow
	err := r.DB.Table("responses r").
		Select("r.question_id, r.user_id, r.answer_text, r.option_id, u.username").
		Joins("JOIN users u ON r.user_id = u.id").
		Where("r.survey_id = ?", surveyID).
		Scan(&rows).Error
	return rows, err
}

func (r *SurveyRepository) CountSurveys() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Survey{}).Count(&count).Error
	return count, err
}

func (r *SurveyRepository) CountResponses() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Response{}).Count(&count).Error
	return count, err
}
