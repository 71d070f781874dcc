// File path: internal/sqlite/types.go
package sqlite

import (
	"database/sql"
	"time"
)

type stepRow struct {
	ID            string         `db:"id"`
	Role          string         `db:"role"`
	Question      sql.NullString `db:"question"`
	QuestionEN    sql.NullString `db:"question_en"`
	QuestionFR    sql.NullString `db:"question_fr"`
	QuestionAR    sql.NullString `db:"question_ar"`
	DescriptionEN sql.NullString `db:"description_en"`
	DescriptionFR sql.NullString `db:"description_fr"`
	DescriptionAR sql.NullString `db:"description_ar"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type answerRow struct {
	ID               string         `db:"id"`
	StepID           string         `db:"step_id"`
	NextStepID       sql.NullString `db:"next_step_id"`
	OrderIndex       int            `db:"order_index"`
	Label            sql.NullString `db:"label"`
	LabelEN          sql.NullString `db:"label_en"`
	LabelFR          sql.NullString `db:"label_fr"`
	LabelAR          sql.NullString `db:"label_ar"`
	RecommendationEN sql.NullString `db:"recommendation_en"`
	RecommendationFR sql.NullString `db:"recommendation_fr"`
	RecommendationAR sql.NullString `db:"recommendation_ar"`
	ActionPlanEN     sql.NullString `db:"action_plan_en"`
	ActionPlanFR     sql.NullString `db:"action_plan_fr"`
	ActionPlanAR     sql.NullString `db:"action_plan_ar"`
	ExampleEN        sql.NullString `db:"example_en"`
	ExampleFR        sql.NullString `db:"example_fr"`
	ExampleAR        sql.NullString `db:"example_ar"`
	WorkshopIDs      sql.NullString `db:"recommended_workshop_ids"`
	CreatedAt        time.Time      `db:"created_at"`
}

type ruleRow struct {
	ID               string         `db:"id"`
	IssueAnswerID    string         `db:"issue_answer_id"`
	AgeAnswerID      string         `db:"age_answer_id"`
	RecommendationEN sql.NullString `db:"recommendation_en"`
	RecommendationFR sql.NullString `db:"recommendation_fr"`
	RecommendationAR sql.NullString `db:"recommendation_ar"`
	ActionPlanEN     sql.NullString `db:"action_plan_en"`
	ActionPlanFR     sql.NullString `db:"action_plan_fr"`
	ActionPlanAR     sql.NullString `db:"action_plan_ar"`
	ExampleEN        sql.NullString `db:"example_en"`
	ExampleFR        sql.NullString `db:"example_fr"`
	ExampleAR        sql.NullString `db:"example_ar"`
	WorkshopIDs      sql.NullString `db:"workshop_ids"`
	CreatedAt        time.Time      `db:"created_at"`
}

type workshopRow struct {
	ID                 string         `db:"id"`
	Slug               sql.NullString `db:"slug"`
	Status             string         `db:"status"`
	PriceCents         int64          `db:"price_cents"`
	Currency           string         `db:"currency"`
	StartsAt           sql.NullTime   `db:"starts_at"`
	Duration           sql.NullString `db:"duration"`
	AgeRange           sql.NullString `db:"age_range"`
	Difficulty         sql.NullString `db:"difficulty"`
	BannerURL          sql.NullString `db:"banner_url"`
	VideoURL           sql.NullString `db:"video_url"`
	TitleEN            sql.NullString `db:"title_en"`
	TitleFR            sql.NullString `db:"title_fr"`
	TitleAR            sql.NullString `db:"title_ar"`
	DescriptionEN      sql.NullString `db:"description_en"`
	DescriptionFR      sql.NullString `db:"description_fr"`
	DescriptionAR      sql.NullString `db:"description_ar"`
	ShortDescriptionEN sql.NullString `db:"short_description_en"`
	ShortDescriptionFR sql.NullString `db:"short_description_fr"`
	ShortDescriptionAR sql.NullString `db:"short_description_ar"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

type expertRow struct {
	ID         string         `db:"id"`
	UserID     sql.NullString `db:"user_id"`
	FullName   string         `db:"full_name"`
	AvatarURL  sql.NullString `db:"avatar_url"`
	HeadlineEN sql.NullString `db:"headline_en"`
	HeadlineFR sql.NullString `db:"headline_fr"`
	HeadlineAR sql.NullString `db:"headline_ar"`
	BioEN      sql.NullString `db:"bio_en"`
	BioFR      sql.NullString `db:"bio_fr"`
	BioAR      sql.NullString `db:"bio_ar"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type categoryRow struct {
	ID            string         `db:"id"`
	Slug          string         `db:"slug"`
	OrderIndex    int            `db:"order_index"`
	Label         sql.NullString `db:"label"`
	LabelEN       sql.NullString `db:"label_en"`
	LabelFR       sql.NullString `db:"label_fr"`
	LabelAR       sql.NullString `db:"label_ar"`
	DescriptionEN sql.NullString `db:"description_en"`
	DescriptionFR sql.NullString `db:"description_fr"`
	DescriptionAR sql.NullString `db:"description_ar"`
	CreatedAt     time.Time      `db:"created_at"`
}

type configRow struct {
	Key       string    `db:"config_key"`
	Value     string    `db:"config_value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type userRow struct {
	ID        string         `db:"id"`
	Email     string         `db:"email"`
	FullName  sql.NullString `db:"full_name"`
	Role      string         `db:"role"`
	CreatedAt time.Time      `db:"created_at"`
}
