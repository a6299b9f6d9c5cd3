package pool

import "github.com/wandermatch/matchengine/pkg/types"

// DefaultPool returns the built-in last-resort candidate set, substituted
// when the pool file is missing, unreadable or empty so a matching request
// can still produce a result.
func DefaultPool() *Pool {
	return &Pool{
		Source: SourceBuiltin,
		Candidates: []types.SurveyResponse{
			{
				ID:                      "default_1",
				Name:                    "Alex",
				Age:                     "25-34",
				Nationality:             "American",
				Destination:             "Japan",
				Budget:                  "$100-200",
				TravelSeason:            "Spring",
				StayDuration:            "1-2 weeks",
				Interests:               "Food, hiking, photography",
				PersonalityType:         "Outgoing",
				CommunicationStyle:      "Direct",
				TravelStyle:             "Mix of popular sites and hidden gems",
				AccommodationPreference: "Mid-range hotels",
				CulturalSymbol:          "Street food markets",
				BucketList:              "Food, hiking, photography",
			},
			{
				ID:                      "default_2",
				Name:                    "Jamie",
				Age:                     "35-44",
				Nationality:             "British",
				Destination:             "Italy",
				Budget:                  "$200-300",
				TravelSeason:            "Autumn",
				StayDuration:            "1 week",
				Interests:               "History, architecture, local cuisine",
				PersonalityType:         "Thoughtful",
				CommunicationStyle:      "Reserved",
				TravelStyle:             "Cultural immersion",
				AccommodationPreference: "Boutique hotels",
				CulturalSymbol:          "Renaissance art",
				BucketList:              "History, architecture, local cuisine",
			},
			{
				ID:                      "default_3",
				Name:                    "Sam",
				Age:                     "25-34",
				Nationality:             "Australian",
				Destination:             "Thailand",
				Budget:                  "$50-100",
				TravelSeason:            "Summer",
				StayDuration:            "2-4 weeks",
				Interests:               "Adventure sports, beaches, nightlife",
				PersonalityType:         "Spontaneous",
				CommunicationStyle:      "Casual",
				TravelStyle:             "Adventure",
				AccommodationPreference: "Hostels",
				CulturalSymbol:          "Island festivals",
				BucketList:              "Adventure sports, beaches, nightlife",
			},
		},
	}
}
