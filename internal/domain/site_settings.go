package domain

type SiteSettings struct {
	SiteName     string
	HeroBadge    string
	HeroTitle    string
	HeroSubtitle string
	HeroImageURL string
}

func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:     "AutoElite",
		HeroBadge:    "Welcome to the Elite Circle",
		HeroTitle:    "DRIVE THE EXCEPTIONAL",
		HeroSubtitle: "Curated premium inventory for the modern connoisseur. Experience unparalleled quality and service.",
		HeroImageURL: "https://images.unsplash.com/photo-1492144534655-ae79c964c9d7?auto=format&fit=crop&q=80&w=2000",
	}
}

// Merge overlays the non-empty fields of patch onto s.
func (s SiteSettings) Merge(patch SiteSettings) SiteSettings {
	if patch.SiteName != "" {
		s.SiteName = patch.SiteName
	}
	if patch.HeroBadge != "" {
		s.HeroBadge = patch.HeroBadge
	}
	if patch.HeroTitle != "" {
		s.HeroTitle = patch.HeroTitle
	}
	if patch.HeroSubtitle != "" {
		s.HeroSubtitle = patch.HeroSubtitle
	}
	if patch.HeroImageURL != "" {
		s.HeroImageURL = patch.HeroImageURL
	}
	return s
}
