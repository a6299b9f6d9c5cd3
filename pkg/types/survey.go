package types

import (
	"strings"
	"time"
)

// NotSpecified is the placeholder used for absent survey answers.
// Fields carrying this value contribute nothing to attribute scoring.
const NotSpecified = "Not specified"

// SurveyResponse holds one user's survey answers. Name, Age, Gender and
// Nationality are display metadata; the remaining fields participate in
// matching. Responses are immutable once created and identified by a
// timestamp-based ID assigned at submission time.
type SurveyResponse struct {
	ID          string `mapstructure:"candidate_id"`
	Name        string `mapstructure:"name"`
	Age         string `mapstructure:"age"`
	Gender      string `mapstructure:"gender"`
	Nationality string `mapstructure:"nationality"`

	Destination             string `mapstructure:"destination"`
	Budget                  string `mapstructure:"budget"`
	TravelSeason            string `mapstructure:"travel_season"`
	StayDuration            string `mapstructure:"stay_duration"`
	Interests               string `mapstructure:"interests"`
	PersonalityType         string `mapstructure:"personality_type"`
	CommunicationStyle      string `mapstructure:"communication_style"`
	TravelStyle             string `mapstructure:"travel_style"`
	AccommodationPreference string `mapstructure:"accommodation_preference"`
	CulturalSymbol          string `mapstructure:"cultural_symbol"`
	BucketList              string `mapstructure:"bucket_list"`
}

// Attribute names for the matching fields, in canonical order. Every
// consumer (embedding, scoring, persistence) iterates fields in this order
// so that vectors, weights and breakdown columns line up by index.
const (
	FieldDestination             = "destination"
	FieldBudget                  = "budget"
	FieldTravelSeason            = "travel_season"
	FieldStayDuration            = "stay_duration"
	FieldInterests               = "interests"
	FieldPersonalityType         = "personality_type"
	FieldCommunicationStyle      = "communication_style"
	FieldTravelStyle             = "travel_style"
	FieldAccommodationPreference = "accommodation_preference"
	FieldCulturalSymbol          = "cultural_symbol"
	FieldBucketList              = "bucket_list"
)

// MatchingFieldNames returns the matching attribute names in canonical order.
func MatchingFieldNames() []string {
	return []string{
		FieldDestination,
		FieldBudget,
		FieldTravelSeason,
		FieldStayDuration,
		FieldInterests,
		FieldPersonalityType,
		FieldCommunicationStyle,
		FieldTravelStyle,
		FieldAccommodationPreference,
		FieldCulturalSymbol,
		FieldBucketList,
	}
}

// MatchingValues returns the matching field values in canonical order,
// parallel to MatchingFieldNames.
func (s *SurveyResponse) MatchingValues() []string {
	return []string{
		s.Destination,
		s.Budget,
		s.TravelSeason,
		s.StayDuration,
		s.Interests,
		s.PersonalityType,
		s.CommunicationStyle,
		s.TravelStyle,
		s.AccommodationPreference,
		s.CulturalSymbol,
		s.BucketList,
	}
}

// AllFieldNames returns every survey column name: display metadata first,
// then the matching fields in canonical order.
func AllFieldNames() []string {
	return append([]string{"name", "age", "gender", "nationality"}, MatchingFieldNames()...)
}

// AllValues returns every field value, parallel to AllFieldNames. Used for
// pool fingerprinting, where display metadata counts as content too.
func (s *SurveyResponse) AllValues() []string {
	return append([]string{s.Name, s.Age, s.Gender, s.Nationality}, s.MatchingValues()...)
}

// FieldValue returns the value of a matching field by name, and whether the
// name is a known matching field.
func (s *SurveyResponse) FieldValue(name string) (string, bool) {
	names := MatchingFieldNames()
	values := s.MatchingValues()
	for i, n := range names {
		if n == name {
			return values[i], true
		}
	}
	return "", false
}

// HasValue reports whether a matching field carries a usable answer.
// Empty strings and the NotSpecified placeholder both count as absent.
func HasValue(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, NotSpecified) && !strings.EqualFold(v, "n/a")
}

// ApplyDefaults fills empty fields with the NotSpecified placeholder and
// assigns a timestamp ID when none is present.
func (s *SurveyResponse) ApplyDefaults(now time.Time) {
	if s.ID == "" {
		s.ID = NewID(now)
	}
	if s.Name == "" {
		s.Name = "Anonymous"
	}
	fill := func(p *string) {
		if strings.TrimSpace(*p) == "" {
			*p = NotSpecified
		}
	}
	fill(&s.Age)
	fill(&s.Gender)
	fill(&s.Nationality)
	fill(&s.Destination)
	fill(&s.Budget)
	fill(&s.TravelSeason)
	fill(&s.StayDuration)
	fill(&s.Interests)
	fill(&s.PersonalityType)
	fill(&s.CommunicationStyle)
	fill(&s.TravelStyle)
	fill(&s.AccommodationPreference)
	fill(&s.CulturalSymbol)
	fill(&s.BucketList)
}

// NewID builds a timestamp-based response ID.
func NewID(now time.Time) string {
	return now.Format("20060102_150405")
}

// CanonicalTexts renders one embedding input per matching field, in
// canonical order. Identical answers always produce identical texts, so the
// embedding input is deterministic for a given response.
func (s *SurveyResponse) CanonicalTexts() []string {
	names := MatchingFieldNames()
	values := s.MatchingValues()
	texts := make([]string, len(names))
	for i := range names {
		v := strings.TrimSpace(values[i])
		if v == "" {
			v = NotSpecified
		}
		texts[i] = names[i] + ": " + v
	}
	return texts
}

// CanonicalText renders the whole profile as a single deterministic string.
// Used for fingerprinting a response, not for embedding.
func (s *SurveyResponse) CanonicalText() string {
	return strings.Join(s.CanonicalTexts(), "\n")
}
