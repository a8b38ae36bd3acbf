package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strings"
	"surveyhub_backend/internal/model"
	"surveyhub_backend/internal/repository"
	"surveyhub_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const statsCacheTTL = time.Minute

type SurveyService struct {
	SurveyRepo *repository.SurveyRepository
	UserRepo   *repository.UserRepository
	rdb        *redis.Client
}

// NewSurveyService rdb 可以为 nil，此时统计不走缓存
func NewSurveyService(surveyRepo *repository.SurveyRepository, userRepo *repository.UserRepository, rdb *redis.Client) *SurveyService {
	return &SurveyService{
		SurveyRepo: surveyRepo,
		UserRepo:   userRepo,
		rdb:        rdb,
	}
}

type QuestionInput struct {
	Text     string             `json:"text" binding:"required"`
	Type     model.QuestionType `json:"type" binding:"required,oneof=TEXT SINGLE_CHOICE MULTIPLE_CHOICE"`
	Required bool               `json:"required"`
	Options  []string           `json:"options"`
}

type CreateSurveyRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Status      model.SurveyStatus `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED"`
	Questions   []QuestionInput    `json:"questions" binding:"required,min=1,dive"`
}

// CreateSurvey 原子地创建问卷及其问题和选项，order 按数组下标+1 分配。
// 返回新问卷 id。
func (s *SurveyService) CreateSurvey(creatorID string, req CreateSurveyRequest) (string, error) {
	status := req.Status
	if status == "" {
		status = model.SurveyPublished
	}

	survey := &model.Survey{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   creatorID,
		Status:      status,
	}

	questions := make([]model.Question, len(req.Questions))
	options := make([][]model.Option, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = model.Question{
			Text:     q.Text,
			Type:     q.Type,
			Order:    i + 1,
			Required: q.Required,
		}
		if q.Type.IsChoice() {
			opts := make([]model.Option, len(q.Options))
			for j, text := range q.Options {
				opts[j] = model.Option{Text: text, Order: j + 1}
			}
			options[i] = opts
		}
	}

	if err := s.SurveyRepo.Create(survey, questions, options); err != nil {
		return "", err
	}
	return survey.ID, nil
}

// ListSurveys 可见性策略：已登录用户看到所有已发布、非本人创建且尚未回答过的问卷；
// 匿名调用（userID 为空）看到所有已发布问卷。
func (s *SurveyService) ListSurveys(userID string) ([]repository.SurveyListRow, error) {
	return s.SurveyRepo.ListVisible(userID)
}

type QuestionDetail struct {
	model.Question
	Options []model.Option `json:"options"`
}

type SurveyDetail struct {
	model.Survey
	CreatorName string           `json:"creator_name"`
	Questions   []QuestionDetail `json:"questions"`
}

func (s *SurveyService) GetSurveyByID(surveyID string) (*SurveyDetail, error) {
	survey, err := s.SurveyRepo.FindByID(surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSurveyNotFound
		}
		return nil, err
	}

	detail := &SurveyDetail{Survey: *survey}

	// 创建者可能已被管理员删除，名字留空即可
	if creator, err := s.UserRepo.FindByID(survey.CreatorID); err == nil {
		detail.CreatorName = creator.Username
	}

	questions, err := s.SurveyRepo.QuestionsBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	allOptions, err := s.SurveyRepo.OptionsBySurvey(surveyID)
	if err != nil {
		return nil, err
	}

	optionsByQuestion := make(map[string][]model.Option)
	for _, opt := range allOptions {
		optionsByQuestion[opt.QuestionID] = append(optionsByQuestion[opt.QuestionID], opt)
	}

	detail.Questions = make([]QuestionDetail, len(questions))
	for i, q := range questions {
		qd := QuestionDetail{Question: q, Options: []model.Option{}}
		if q.Type.IsChoice() {
			if opts, ok := optionsByQuestion[q.ID]; ok {
				qd.Options = opts
			}
		}
		detail.Questions[i] = qd
	}

	return detail, nil
}

type AnswerInput struct {
	QuestionID string  `json:"questionId" binding:"required"`
	Text       *string `json:"text"`
	OptionID   *string `json:"optionId"`
}

func (s *SurveyService) buildResponses(surveyID, userID string, answers []AnswerInput) []model.Response {
	responses := make([]model.Response, len(answers))
	for i, a := range answers {
		responses[i] = model.Response{
			SurveyID:   surveyID,
			QuestionID: a.QuestionID,
			UserID:     userID,
			AnswerText: a.Text,
			OptionID:   a.OptionID,
		}
	}
	return responses
}

// SubmitResponse 每条 answer 写一行回答。多选题的选项 id 由调用方预先
// 以逗号拼入 text，与旧版线上契约保持一致。
func (s *SurveyService) SubmitResponse(surveyID, userID string, answers []AnswerInput) error {
	if _, err := s.SurveyRepo.FindByID(surveyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSurveyNotFound
		}
		return err
	}

	if err := s.SurveyRepo.InsertResponses(s.buildResponses(surveyID, userID, answers)); err != nil {
		return err
	}
	s.invalidateStats(surveyID)
	return nil
}

// UpdateResponse 整体替换而非合并
func (s *SurveyService) UpdateResponse(surveyID, userID string, answers []AnswerInput) error {
	if err := s.SurveyRepo.ReplaceResponses(surveyID, userID, s.buildResponses(surveyID, userID, answers)); err != nil {
		return err
	}
	s.invalidateStats(surveyID)
	return nil
}

// DeleteResponse 无条件删除调用者对该问卷的全部回答，幂等
func (s *SurveyService) DeleteResponse(surveyID, userID string) error {
	if err := s.SurveyRepo.DeleteResponses(surveyID, userID); err != nil {
		return err
	}
	s.invalidateStats(surveyID)
	return nil
}

// DeleteSurvey 仅创建者可删。问卷不存在同样返回 ErrNotOwner，
// 与旧版"按 id+creator 查不到就 403"的行为一致。
func (s *SurveyService) DeleteSurvey(surveyID, userID string) error {
	survey, err := s.SurveyRepo.FindByID(surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotOwner
		}
		return err
	}
	if survey.CreatorID != userID {
		return util.ErrNotOwner
	}

	if err := s.SurveyRepo.DeleteCascade(surveyID); err != nil {
		return err
	}
	s.invalidateStats(surveyID)
	return nil
}

func (s *SurveyService) GetMySurveys(userID string) ([]model.Survey, error) {
	return s.SurveyRepo.ListByCreator(userID)
}

type MyResponseRow struct {
	SurveyID    string    `json:"survey_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// GetMyResponses 每个回答过的问卷一行，取该问卷下最近一次提交时间，新的在前
func (s *SurveyService) GetMyResponses(userID string) ([]MyResponseRow, error) {
	responses, err := s.SurveyRepo.ResponsesByUser(userID)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]time.Time)
	for _, r := range responses {
		if t, ok := latest[r.SurveyID]; !ok || r.SubmittedAt.After(t) {
			latest[r.SurveyID] = r.SubmittedAt
		}
	}

	ids := make([]string, 0, len(latest))
	for id := range latest {
		ids = append(ids, id)
	}

	surveys, err := s.SurveyRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	rows := make([]MyResponseRow, 0, len(surveys))
	for _, sv := range surveys {
		rows = append(rows, MyResponseRow{
			SurveyID:    sv.ID,
			Title:       sv.Title,
			Description: sv.Description,
			SubmittedAt: latest[sv.ID],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].SubmittedAt.After(rows[j].SubmittedAt)
	})
	return rows, nil
}

// GetSurveyResponse 调用者自己的原始回答，供编辑表单回填
func (s *SurveyService) GetSurveyResponse(surveyID, userID string) ([]repository.UserAnswerRow, error) {
	return s.SurveyRepo.UserAnswers(surveyID, userID)
}

type TextAnswer struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

type TextQuestionStats struct {
	QuestionID   string       `json:"questionId"`
	QuestionText string       `json:"questionText"`
	Answers      []TextAnswer `json:"answers"`
}

type OptionStat struct {
	OptionID   string `json:"optionId"`
	Text       string `json:"text"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type ChoiceQuestionStats struct {
	QuestionID     string       `json:"questionId"`
	QuestionText   string       `json:"questionText"`
	TotalResponses int          `json:"totalResponses"`
	Options        []OptionStat `json:"options"`
}

type SurveyStats struct {
	TotalRespondents int                   `json:"totalRespondents"`
	TextResponses    []TextQuestionStats   `json:"textResponses"`
	ChoiceStats      []ChoiceQuestionStats `json:"choiceStats"`
}

func statsCacheKey(surveyID string) string {
	return "surveyhub:stats:" + surveyID
}

func (s *SurveyService) invalidateStats(surveyID string) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(context.Background(), statsCacheKey(surveyID))
}

// GetSurveyStats 聚合每道题的回答。结果短暂缓存在 redis，
// 缓存读写失败一律回退到数据库。
func (s *SurveyService) GetSurveyStats(surveyID string) (*SurveyStats, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(context.Background(), statsCacheKey(surveyID)).Result(); err == nil {
			var stats SurveyStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	if _, err := s.SurveyRepo.FindByID(surveyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSurveyNotFound
		}
		return nil, err
	}

	questions, err := s.SurveyRepo.QuestionsBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	allOptions, err := s.SurveyRepo.OptionsBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	rows, err := s.SurveyRepo.ResponsesWithUsernames(surveyID)
	if err != nil {
		return nil, err
	}

	optionsByQuestion := make(map[string][]model.Option)
	for _, opt := range allOptions {
		optionsByQuestion[opt.QuestionID] = append(optionsByQuestion[opt.QuestionID], opt)
	}
	rowsByQuestion := make(map[string][]repository.ResponseRow)
	respondents := make(map[string]bool)
	for _, row := range rows {
		rowsByQuestion[row.QuestionID] = append(rowsByQuestion[row.QuestionID], row)
		respondents[row.UserID] = true
	}

	stats := &SurveyStats{
		TotalRespondents: len(respondents),
		TextResponses:    []TextQuestionStats{},
		ChoiceStats:      []ChoiceQuestionStats{},
	}

	for _, q := range questions {
		qRows := rowsByQuestion[q.ID]

		if q.Type == model.QuestionText {
			ts := TextQuestionStats{
				QuestionID:   q.ID,
				QuestionText: q.Text,
				Answers:      []TextAnswer{},
			}
			for _, row := range qRows {
				if row.AnswerText != nil && *row.AnswerText != "" {
					ts.Answers = append(ts.Answers, TextAnswer{Username: row.Username, Text: *row.AnswerText})
				}
			}
			stats.TextResponses = append(stats.TextResponses, ts)
			continue
		}

		answered := make(map[string]bool)
		counts := make(map[string]int)
		for _, row := range qRows {
			answered[row.UserID] = true
			if q.Type == model.QuestionMultipleChoice {
				// 多选题的选项 id 以逗号拼接存在 answer_text 里
				if row.AnswerText != nil {
					for _, id := range strings.Split(*row.AnswerText, ",") {
						if id = strings.TrimSpace(id); id != "" {
							counts[id]++
						}
					}
				}
			} else if row.OptionID != nil {
				counts[*row.OptionID]++
			}
		}

		cs := ChoiceQuestionStats{
			QuestionID:     q.ID,
			QuestionText:   q.Text,
			TotalResponses: len(answered),
			Options:        []OptionStat{},
		}
		for _, opt := range optionsByQuestion[q.ID] {
			count := counts[opt.ID]
			percentage := 0
			if cs.TotalResponses > 0 {
				percentage = int(math.Round(float64(count) / float64(cs.TotalResponses) * 100))
			}
			cs.Options = append(cs.Options, OptionStat{
				OptionID:   opt.ID,
				Text:       opt.Text,
				Count:      count,
				Percentage: percentage,
			})
		}
		stats.ChoiceStats = append(stats.ChoiceStats, cs)
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.rdb.Set(context.Background(), statsCacheKey(surveyID), payload, statsCacheTTL)
		}
	}

	return stats, nil
}
