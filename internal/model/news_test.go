package model

import "testing"

func TestRawNewsArticleValid(t *testing.T) {
	complete := RawNewsArticle{
		ID:       1,
		Headline: "h",
		URL:      "https://example.com",
		Datetime: 100,
		Summary:  "s",
	}
	if !complete.Valid() {
		t.Fatal("complete article must be valid")
	}

	mutations := []struct {
		name   string
		mutate func(*RawNewsArticle)
	}{
		{"missing id", func(a *RawNewsArticle) { a.ID = 0 }},
		{"missing headline", func(a *RawNewsArticle) { a.Headline = "" }},
		{"missing url", func(a *RawNewsArticle) { a.URL = "" }},
		{"missing datetime", func(a *RawNewsArticle) { a.Datetime = 0 }},
		{"missing summary", func(a *RawNewsArticle) { a.Summary = "" }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			a := complete
			tt.mutate(&a)
			if a.Valid() {
				t.Error("article with a missing required field must be invalid")
			}
		})
	}

	// Optional fields do not affect validity.
	bare := complete
	bare.Source = ""
	bare.Category = ""
	bare.Image = ""
	bare.Related = ""
	if !bare.Valid() {
		t.Error("article without optional fields must stay valid")
	}
}
