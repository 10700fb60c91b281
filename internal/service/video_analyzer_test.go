package service

import (
	"strings"
	"testing"
)

func TestValidateDriveLinkFormat(t *testing.T) {
	tests := []struct {
		name   string
		link   string
		valid  bool
		fileID string
	}{
		{"file path form", "https://drive.google.com/file/d/ABC123/view", true, "ABC123"},
		{"open id form", "https://drive.google.com/open?id=xyz_789-a", true, "xyz_789-a"},
		{"docs form", "https://docs.google.com/presentation/d/DOC456/edit", true, "DOC456"},
		{"not drive", "https://example.com/video", false, ""},
		{"youtube", "https://youtube.com/watch?v=abc", false, ""},
		{"empty", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validateDriveLinkFormat(tt.link)
			if v.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (%s)", v.Valid, tt.valid, v.Message)
			}
			if v.FileID != tt.fileID {
				t.Errorf("FileID = %q, want %q", v.FileID, tt.fileID)
			}
			if tt.valid {
				want := "https://drive.google.com/file/d/" + tt.fileID + "/view"
				if v.DirectLink != want {
					t.Errorf("DirectLink = %q, want %q", v.DirectLink, want)
				}
			}
		})
	}
}

func TestAnalyzeTranscriptBaseScores(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       float64
	}{
		{"key phrase", "Today I will explain machine learning in detail.", 78},
		{"long transcript", strings.Repeat("word ", 85), 72},
		{"short generic", "A brief talk about nothing in particular.", 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AnalyzeTranscript(tt.transcript, "AI", 0)
			if a.ScorePercentage != tt.want {
				t.Fatalf("ScorePercentage = %v, want %v", a.ScorePercentage, tt.want)
			}
			if a.TotalScore != tt.want {
				t.Fatalf("TotalScore = %v, want %v", a.TotalScore, tt.want)
			}
		})
	}
}

func TestAnalyzeTranscriptJitterClamped(t *testing.T) {
	a := AnalyzeTranscript("artificial intelligence", "AI", 50)
	if a.ScorePercentage != 100 {
		t.Fatalf("ScorePercentage = %v, want clamp at 100", a.ScorePercentage)
	}

	a = AnalyzeTranscript("short", "AI", -100)
	if a.ScorePercentage != 0 {
		t.Fatalf("ScorePercentage = %v, want clamp at 0", a.ScorePercentage)
	}
}

func TestAnalyzeTranscriptCriterionDecomposition(t *testing.T) {
	a := AnalyzeTranscript("machine learning basics", "ML", 2) // score 80

	if a.Grade != "B" {
		t.Fatalf("Grade = %q, want B", a.Grade)
	}
	if a.ContentQuality.Score != 24.0 {
		t.Errorf("ContentQuality = %v, want 24.0", a.ContentQuality.Score)
	}
	if a.ClarityCommunication.Score != 20.0 {
		t.Errorf("ClarityCommunication = %v, want 20.0", a.ClarityCommunication.Score)
	}
	if a.TechnicalKnowledge.Score != 16.0 {
		t.Errorf("TechnicalKnowledge = %v, want 16.0", a.TechnicalKnowledge.Score)
	}
	if a.StructureOrganization.Score != 12.0 {
		t.Errorf("StructureOrganization = %v, want 12.0", a.StructureOrganization.Score)
	}
	if a.EngagementDelivery.Score != 8.0 {
		t.Errorf("EngagementDelivery = %v, want 8.0", a.EngagementDelivery.Score)
	}

	sum := a.ContentQuality.Score + a.ClarityCommunication.Score + a.TechnicalKnowledge.Score +
		a.StructureOrganization.Score + a.EngagementDelivery.Score
	if sum != a.TotalScore {
		t.Errorf("criterion scores sum to %v, want %v", sum, a.TotalScore)
	}
}

func TestParseVideoAnalysisFillsDerivedFields(t *testing.T) {
	reply := `Here is the assessment: {"total_score": 85, "overall_feedback": "solid"}`

	a, err := parseVideoAnalysis(reply)
	if err != nil {
		t.Fatalf("parseVideoAnalysis: %v", err)
	}
	if a.ScorePercentage != 85 {
		t.Errorf("ScorePercentage = %v, want 85 from total_score", a.ScorePercentage)
	}
	if a.Grade != "B" {
		t.Errorf("Grade = %q, want B", a.Grade)
	}
}

func TestParseVideoAnalysisRejectsNonJSON(t *testing.T) {
	if _, err := parseVideoAnalysis("no json here"); err == nil {
		t.Fatal("expected error for reply without a JSON object")
	}
}
