package store

import (
	"context"
	"fmt"

	"github.com/nvandessel/auralie/internal/models"
)

// SampleProfiles returns the built-in demo profiles, normalized.
func SampleProfiles() []*models.Profile {
	profiles := []*models.Profile{
		{
			Name: "David Chen", Age: 28, Gender: models.GenderMale, Personality: "ENFP",
			Bio:                "Adventure seeker and dog dad. Love spontaneous road trips and deep conversations over coffee.",
			InstagramStyle:     "travel enthusiast with lots of dog photos",
			LinkedInSummary:    "Product Manager at a tech startup, passionate about user experience",
			Interests:          []string{"hiking", "photography", "cooking", "dogs", "live music"},
			Values:             []string{"authenticity", "adventure", "growth", "kindness"},
			LoveLanguage:       "quality time",
			Dealbreakers:       []string{"dishonesty", "close-mindedness"},
			CommunicationStyle: "warm and expressive, loves to share stories",
		},
		{
			Name: "Clare Martinez", Age: 26, Gender: models.GenderFemale, Personality: "INFJ",
			Bio:                "Creative soul with a passion for meaningful connections. Dog lover, bookworm, and aspiring chef.",
			InstagramStyle:     "aesthetic photos of books, food, and her puppy Cookie",
			LinkedInSummary:    "UX Designer focused on creating delightful user experiences",
			Interests:          []string{"reading", "baking", "yoga", "dogs", "art galleries"},
			Values:             []string{"empathy", "creativity", "authenticity", "family"},
			LoveLanguage:       "words of affirmation",
			Dealbreakers:       []string{"arrogance", "lack of ambition"},
			CommunicationStyle: "thoughtful and genuine, takes time to express deep feelings",
		},
		{
			Name: "Marcus Johnson", Age: 30, Gender: models.GenderMale, Personality: "ISTJ",
			Bio:                "Fitness enthusiast and finance professional. Believe in working hard and living balanced.",
			InstagramStyle:     "gym progress, healthy meals, and occasional travel",
			LinkedInSummary:    "Financial Analyst with focus on sustainable investments",
			Interests:          []string{"fitness", "investing", "basketball", "meal prep", "podcasts"},
			Values:             []string{"discipline", "loyalty", "integrity", "health"},
			LoveLanguage:       "acts of service",
			Dealbreakers:       []string{"unreliability", "laziness", "financial irresponsibility"},
			CommunicationStyle: "direct and practical, values efficiency",
		},
		{
			Name: "Sophie Laurent", Age: 27, Gender: models.GenderFemale, Personality: "ESFP",
			Bio:                "Life of the party who also loves quiet Sunday mornings. Wine enthusiast and amateur dancer.",
			InstagramStyle:     "vibrant party photos, wine tastings, dance videos",
			LinkedInSummary:    "Marketing Manager with passion for brand storytelling",
			Interests:          []string{"dancing", "wine tasting", "social events", "fashion", "concerts"},
			Values:             []string{"fun", "friendship", "living in the moment", "positivity"},
			LoveLanguage:       "physical touch",
			Dealbreakers:       []string{"being too serious", "judgmental attitude"},
			CommunicationStyle: "energetic and enthusiastic, very expressive",
		},
		{
			Name: "Alex Kim", Age: 29, Gender: models.GenderNonBinary, Personality: "INTP",
			Bio:                "Tech nerd with a soft spot for cats and sci-fi. Building cool things by day, gaming by night.",
			InstagramStyle:     "minimal aesthetic, tech setups, cat photos, memes",
			LinkedInSummary:    "Software Engineer specializing in AI/ML systems",
			Interests:          []string{"programming", "gaming", "sci-fi", "cats", "philosophy"},
			Values:             []string{"curiosity", "logic", "independence", "innovation"},
			LoveLanguage:       "quality time",
			Dealbreakers:       []string{"anti-intellectualism", "neediness"},
			CommunicationStyle: "analytical and precise, enjoys deep debates",
		},
		{
			Name: "Emma Thompson", Age: 25, Gender: models.GenderFemale, Personality: "ENFJ",
			Bio:                "Teacher who believes in changing the world one student at a time. Love volunteering and outdoor adventures.",
			InstagramStyle:     "teaching moments, volunteering activities, nature photos",
			LinkedInSummary:    "Elementary School Teacher passionate about inclusive education",
			Interests:          []string{"teaching", "volunteering", "camping", "board games", "gardening"},
			Values:             []string{"compassion", "education", "community", "growth"},
			LoveLanguage:       "words of affirmation",
			Dealbreakers:       []string{"selfishness", "closed-mindedness"},
			CommunicationStyle: "encouraging and warm, natural motivator",
		},
		{
			Name: "Ryan O'Brien", Age: 31, Gender: models.GenderMale, Personality: "ESTP",
			Bio:                "Entrepreneur and adrenaline junkie. Building businesses and chasing thrills. Let's make life exciting!",
			InstagramStyle:     "action shots of extreme sports, business wins, luxury travel",
			LinkedInSummary:    "Founder of two successful startups, angel investor",
			Interests:          []string{"rock climbing", "surfing", "entrepreneurship", "poker", "fast cars"},
			Values:             []string{"ambition", "freedom", "boldness", "winning"},
			LoveLanguage:       "physical touch",
			Dealbreakers:       []string{"pessimism", "lack of drive", "boring lifestyle"},
			CommunicationStyle: "confident and direct, persuasive speaker",
		},
		{
			Name: "Maya Patel", Age: 28, Gender: models.GenderFemale, Personality: "ISFJ",
			Bio:                "Nurse with a big heart. Family-oriented, love cozy nights in, and believe in traditional values with modern twist.",
			InstagramStyle:     "family gatherings, home cooking, cozy aesthetics",
			LinkedInSummary:    "Registered Nurse in pediatrics, dedicated to patient care",
			Interests:          []string{"cooking", "knitting", "family time", "medical dramas", "gardening"},
			Values:             []string{"family", "stability", "caring", "tradition"},
			LoveLanguage:       "acts of service",
			Dealbreakers:       []string{"insensitivity", "unpredictability", "lack of family values"},
			CommunicationStyle: "gentle and supportive, avoids conflict",
		},
		{
			Name: "Jordan Lee", Age: 26, Gender: models.GenderMale, Personality: "INTJ",
			Bio:                "Architect designing the future. Chess player, classical music lover, and weekend philosopher.",
			InstagramStyle:     "architectural photography, chess boards, minimalist aesthetic",
			LinkedInSummary:    "Architect focused on sustainable urban design",
			Interests:          []string{"architecture", "chess", "classical music", "reading", "museums"},
			Values:             []string{"excellence", "intelligence", "vision", "efficiency"},
			LoveLanguage:       "quality time",
			Dealbreakers:       []string{"mediocrity", "lack of depth", "emotional drama"},
			CommunicationStyle: "thoughtful and strategic, values substance over style",
		},
		{
			Name: "Zara Williams", Age: 29, Gender: models.GenderFemale, Personality: "ENTP",
			Bio:                "Startup founder who thrives on debate and innovation. Life's too short for boring conversations!",
			InstagramStyle:     "startup life, debate club, travel adventures, thought-provoking quotes",
			LinkedInSummary:    "Tech Entrepreneur and Innovation Consultant",
			Interests:          []string{"debating", "startups", "travel", "podcasting", "improv comedy"},
			Values:             []string{"innovation", "freedom", "intellectual growth", "humor"},
			LoveLanguage:       "words of affirmation",
			Dealbreakers:       []string{"rigidity", "taking things too personally", "narrow-mindedness"},
			CommunicationStyle: "witty and challenging, loves intellectual sparring",
		},
	}
	for _, p := range profiles {
		p.Normalize()
	}
	return profiles
}

// Seed writes every sample profile into s and returns the written paths.
func Seed(ctx context.Context, s *DirProfileStore) ([]string, error) {
	var paths []string
	for _, p := range SampleProfiles() {
		path, err := s.Save(ctx, p)
		if err != nil {
			return paths, fmt.Errorf("failed to seed %s: %w", p.ID, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
