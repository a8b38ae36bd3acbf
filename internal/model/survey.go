package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SurveyStatus string

const (
	SurveyDraft     SurveyStatus = "DRAFT"
	SurveyPublished SurveyStatus = "PUBLISHED"
)

type QuestionType string

const (
	QuestionText           QuestionType = "TEXT"
	QuestionSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
)

// IsChoice 判断题型是否带选项
func (t QuestionType) IsChoice() bool {
	return t == QuestionSingleChoice || t == QuestionMultipleChoice
}

// swagger:model Survey
type Survey struct {
	UUIDBase
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	CreatorID   string       `gorm:"index;type:varchar(36);not null" json:"creator_id"`
	Status      SurveyStatus `gorm:"size:20;default:'PUBLISHED'" json:"status"`
}

func (Survey) TableName() string {
	return "surveys"
}

// swagger:model Question
type Question struct {
	UUIDBase
	SurveyID string       `gorm:"index;type:varchar(36);not null" json:"survey_id"`
	Text     string       `gorm:"type:text;not null" json:"text"`
	Type     QuestionType `gorm:"size:20;not null" json:"type"`
	Order    int          `gorm:"column:question_order;not null" json:"order"` // 1-based，创建时按数组顺序分配
	Required bool         `gorm:"default:false" json:"required"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Option
type Option struct {
	UUIDBase
	QuestionID string `gorm:"index;type:varchar(36);not null" json:"question_id"`
	Text       string `gorm:"size:255;not null" json:"text"`
	Order      int    `gorm:"column:option_order;not null" json:"order"`
}

func (Option) TableName() string {
	return "options"
}

// Response 一名用户对一道题的一次回答。多选题的选项 id 以逗号拼接存入 AnswerText。
// swagger:model Response
type Response struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SurveyID    string    `gorm:"index;type:varchar(36);not null" json:"survey_id"`
	QuestionID  string    `gorm:"index;type:varchar(36);not null" json:"question_id"`
	UserID      string    `gorm:"index;type:varchar(36);not null" json:"user_id"`
	AnswerText  *string   `gorm:"type:text" json:"answer_text"`
	OptionID    *string   `gorm:"type:varchar(36)" json:"option_id"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}

func (Response) TableName() string {
	return "responses"
}

func (r *Response) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
