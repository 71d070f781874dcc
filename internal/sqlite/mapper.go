// File path: internal/sqlite/mapper.go
package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/parentys/platform/internal/catalog"
	"github.com/parentys/platform/internal/i18n"
	"github.com/parentys/platform/internal/quickpath"
)

func putField(fields i18n.Fields, name string, value sql.NullString) {
	if value.Valid && value.String != "" {
		fields[name] = value.String
	}
}

func nullable(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

// decodeIDList reads a JSON array column such as recommended_workshop_ids.
// Malformed content degrades to an empty list.
func decodeIDList(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw.String), &ids); err != nil {
		return nil
	}
	return ids
}

func encodeIDList(ids []string) sql.NullString {
	if len(ids) == 0 {
		return sql.NullString{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

func mapStep(row stepRow) quickpath.Step {
	fields := i18n.Fields{}
	putField(fields, "question", row.Question)
	putField(fields, "question_en", row.QuestionEN)
	putField(fields, "question_fr", row.QuestionFR)
	putField(fields, "question_ar", row.QuestionAR)
	putField(fields, "description_en", row.DescriptionEN)
	putField(fields, "description_fr", row.DescriptionFR)
	putField(fields, "description_ar", row.DescriptionAR)
	role := quickpath.StepRole(row.Role)
	if role != quickpath.RoleIssue && role != quickpath.RoleAge {
		role = quickpath.RoleGeneric
	}
	return quickpath.Step{
		ID:        row.ID,
		Role:      role,
		Text:      fields,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapAnswer(row answerRow) quickpath.Answer {
	fields := i18n.Fields{}
	putField(fields, "label", row.Label)
	putField(fields, "label_en", row.LabelEN)
	putField(fields, "label_fr", row.LabelFR)
	putField(fields, "label_ar", row.LabelAR)
	putField(fields, "recommendation_en", row.RecommendationEN)
	putField(fields, "recommendation_fr", row.RecommendationFR)
	putField(fields, "recommendation_ar", row.RecommendationAR)
	putField(fields, "action_plan_en", row.ActionPlanEN)
	putField(fields, "action_plan_fr", row.ActionPlanFR)
	putField(fields, "action_plan_ar", row.ActionPlanAR)
	putField(fields, "example_en", row.ExampleEN)
	putField(fields, "example_fr", row.ExampleFR)
	putField(fields, "example_ar", row.ExampleAR)
	answer := quickpath.Answer{
		ID:          row.ID,
		StepID:      row.StepID,
		OrderIndex:  row.OrderIndex,
		WorkshopIDs: decodeIDList(row.WorkshopIDs),
		Text:        fields,
		CreatedAt:   row.CreatedAt,
	}
	if row.NextStepID.Valid {
		answer.NextStepID = row.NextStepID.String
	}
	return answer
}

func mapRule(row ruleRow) quickpath.Rule {
	fields := i18n.Fields{}
	putField(fields, "recommendation_en", row.RecommendationEN)
	putField(fields, "recommendation_fr", row.RecommendationFR)
	putField(fields, "recommendation_ar", row.RecommendationAR)
	putField(fields, "action_plan_en", row.ActionPlanEN)
	putField(fields, "action_plan_fr", row.ActionPlanFR)
	putField(fields, "action_plan_ar", row.ActionPlanAR)
	putField(fields, "example_en", row.ExampleEN)
	putField(fields, "example_fr", row.ExampleFR)
	putField(fields, "example_ar", row.ExampleAR)
	return quickpath.Rule{
		ID:            row.ID,
		IssueAnswerID: row.IssueAnswerID,
		AgeAnswerID:   row.AgeAnswerID,
		WorkshopIDs:   decodeIDList(row.WorkshopIDs),
		Text:          fields,
		CreatedAt:     row.CreatedAt,
	}
}

func mapWorkshop(row workshopRow) catalog.Workshop {
	fields := i18n.Fields{}
	putField(fields, "title_en", row.TitleEN)
	putField(fields, "title_fr", row.TitleFR)
	putField(fields, "title_ar", row.TitleAR)
	putField(fields, "description_en", row.DescriptionEN)
	putField(fields, "description_fr", row.DescriptionFR)
	putField(fields, "description_ar", row.DescriptionAR)
	putField(fields, "short_description_en", row.ShortDescriptionEN)
	putField(fields, "short_description_fr", row.ShortDescriptionFR)
	putField(fields, "short_description_ar", row.ShortDescriptionAR)
	workshop := catalog.Workshop{
		ID:         row.ID,
		Slug:       row.Slug.String,
		Status:     row.Status,
		PriceCents: row.PriceCents,
		Currency:   row.Currency,
		Duration:   row.Duration.String,
		AgeRange:   row.AgeRange.String,
		Difficulty: row.Difficulty.String,
		BannerURL:  row.BannerURL.String,
		VideoURL:   row.VideoURL.String,
		Text:       fields,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.StartsAt.Valid {
		ts := row.StartsAt.Time
		workshop.StartsAt = &ts
	}
	return workshop
}

func mapExpert(row expertRow) catalog.Expert {
	fields := i18n.Fields{}
	putField(fields, "headline_en", row.HeadlineEN)
	putField(fields, "headline_fr", row.HeadlineFR)
	putField(fields, "headline_ar", row.HeadlineAR)
	putField(fields, "bio_en", row.BioEN)
	putField(fields, "bio_fr", row.BioFR)
	putField(fields, "bio_ar", row.BioAR)
	return catalog.Expert{
		ID:        row.ID,
		UserID:    row.UserID.String,
		FullName:  row.FullName,
		AvatarURL: row.AvatarURL.String,
		Text:      fields,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapCategory(row categoryRow) catalog.Category {
	fields := i18n.Fields{}
	putField(fields, "label", row.Label)
	putField(fields, "label_en", row.LabelEN)
	putField(fields, "label_fr", row.LabelFR)
	putField(fields, "label_ar", row.LabelAR)
	putField(fields, "description_en", row.DescriptionEN)
	putField(fields, "description_fr", row.DescriptionFR)
	putField(fields, "description_ar", row.DescriptionAR)
	return catalog.Category{
		ID:         row.ID,
		Slug:       row.Slug,
		OrderIndex: row.OrderIndex,
		Text:       fields,
		CreatedAt:  row.CreatedAt,
	}
}

func mapConfig(row configRow) catalog.ConfigEntry {
	return catalog.ConfigEntry{
		Key:       row.Key,
		Value:     json.RawMessage(row.Value),
		UpdatedAt: row.UpdatedAt,
	}
}

func mapUser(row userRow) catalog.User {
	return catalog.User{
		ID:        row.ID,
		Email:     row.Email,
		FullName:  row.FullName.String,
		Role:      row.Role,
		CreatedAt: row.CreatedAt,
	}
}

func nullableTime(ts *time.Time) sql.NullTime {
	if ts == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *ts, Valid: true}
}
