package normalize

var heroFields = []Field{
	str("subtitle", "", "subheading", "tagline", "hero.subtitle"),
	str("description", "", "text", "content", "body", "hero.description"),
	str("image", "", "heroImage", "imageUrl", "image_url", "hero.image"),
}

var specs = map[string]Spec{
	"PayrollHeroSection": {
		Fields: append([]Field{
			str("title", "Payroll made simple", "heading", "headline", "hero.title"),
			str("backgroundImage", "", "background", "bgImage", "backgroundImageUrl"),
		}, heroFields...),
		Objects: []Object{
			button("ctaButton", "Get started", "#", alias("cta", "primaryButton", "primaryCta"),
				alias("ctaText", "buttonText", "primaryButtonText"), alias("ctaLink", "buttonLink", "ctaUrl", "primaryButtonLink")),
			button("secondaryButton", "Learn more", "#", alias("secondaryCta", "secondary"),
				alias("secondaryButtonText", "secondaryCtaText"), alias("secondaryButtonLink", "secondaryCtaLink")),
		},
	},
	"HRHeroSection": {
		Fields: append([]Field{
			str("title", "HR made simple", "heading", "headline", "hero.title"),
		}, heroFields...),
		Objects: []Object{
			button("ctaButton", "Get started", "#", alias("cta", "primaryButton"),
				alias("ctaText", "buttonText"), alias("ctaLink", "buttonLink", "ctaUrl")),
		},
	},
	"FAQSection": {
		Fields: []Field{
			str("title", "Frequently Asked Questions", "heading"),
			str("subtitle", "", "subheading", "description"),
		},
		Lists: []List{{
			Key:     "faqs",
			Aliases: alias("faqs", "items", "questions", "faq"),
			Item: []Field{
				str("question", "", "title", "q", "name"),
				str("answer", "", "description", "a", "content", "text"),
			},
			Title:       "question",
			Placeholder: "Question %d",
		}},
	},
	"PricingSection": {
		Fields: []Field{
			str("title", "Pricing", "heading"),
			str("subtitle", "", "subheading", "description"),
		},
		Lists: []List{{
			Key:     "plans",
			Aliases: alias("plans", "pricingPlans", "tiers", "items"),
			Item: []Field{
				str("name", "", "title", "planName"),
				str("price", "", "amount", "cost"),
				str("period", "per month", "interval", "billing"),
				str("description", "", "subtitle", "summary"),
				stringsField("features", "items", "benefits", "includes"),
				str("ctaText", "Choose plan", "buttonText", "cta.text", "ctaButton.text"),
				str("ctaLink", "#", "buttonLink", "cta.link", "ctaButton.link"),
				boolean("highlighted", false, "featured", "popular", "recommended"),
			},
			Title:       "name",
			Placeholder: "Plan %d",
		}},
	},
	"BenefitsSection": {
		Fields: []Field{
			str("title", "Benefits", "heading"),
			str("subtitle", "", "subheading", "description"),
		},
		Lists: []List{cardList("benefits", "Benefit %d", alias("items", "benefitList", "cards"))},
	},
	"FeaturesSection": {
		Fields: []Field{
			str("title", "Features", "heading"),
			str("subtitle", "", "subheading", "description"),
		},
		Lists: []List{cardList("features", "Feature %d", alias("items", "featureList", "cards"))},
	},
	"ServicesGridSection": {
		Fields: []Field{
			str("title", "Services", "heading"),
			str("subtitle", "", "subheading", "description"),
		},
		Lists: []List{cardList("services", "Service %d", alias("items", "cards", "offerings"))},
	},
	"CardsSection": {
		Fields: []Field{
			str("title", "", "heading"),
		},
		Lists: []List{cardList("cards", "Card %d", alias("items", "resources"))},
	},
	"HowItWorksSection": {
		Fields: []Field{
			str("title", "How It Works", "heading"),
			str("subtitle", "", "subheading", "description"),
		},
		Lists: []List{stepList()},
	},
	"PayrollHowItWorksSection": {
		Fields: []Field{
			str("title", "How Payroll Works", "heading"),
			str("subtitle", "", "subheading", "description"),
		},
		Lists: []List{stepList()},
	},
	"TimelineSection": {
		Fields: []Field{
			str("title", "Timeline", "heading"),
		},
		Lists: []List{{
			Key:     "events",
			Aliases: alias("events", "milestones", "items", "timeline"),
			Item: []Field{
				str("date", "", "year", "when"),
				str("title", "", "name", "heading"),
				str("description", "", "text", "content"),
			},
			Title:       "title",
			Placeholder: "Milestone %d",
		}},
	},
	"TestimonialsSection": {
		Fields: []Field{
			str("title", "What Our Customers Say", "heading"),
		},
		Lists: []List{{
			Key:     "testimonials",
			Aliases: alias("testimonials", "reviews", "quotes", "items"),
			Item: []Field{
				str("quote", "", "text", "content", "testimonial", "review"),
				str("author", "", "name", "authorName", "author.name"),
				str("role", "", "title", "position", "jobTitle", "author.role"),
				str("company", "", "organization", "author.company"),
				str("avatar", "", "image", "photo", "avatarUrl", "author.avatar"),
				num("rating", 5, "stars", "score"),
			},
			Title:       "author",
			Placeholder: "Customer %d",
		}},
	},
	"CTASection": {
		Fields: []Field{
			str("title", "Ready to get started?", "heading", "headline"),
			str("description", "", "subtitle", "text", "content"),
			{Key: "variant", Aliases: alias("variant", "style", "color"), Default: "primary", As: Variant},
		},
		Objects: []Object{
			button("ctaButton", "Get started", "#", alias("cta", "primaryButton"),
				alias("ctaText", "buttonText"), alias("ctaLink", "buttonLink", "ctaUrl")),
			button("secondaryButton", "", "", alias("secondaryCta", "secondary"),
				alias("secondaryButtonText", "secondaryCtaText"), alias("secondaryButtonLink", "secondaryCtaLink")),
		},
	},
	"ContactSection": {
		Fields: []Field{
			str("title", "Contact Us", "heading"),
			str("description", "", "subtitle", "text"),
			str("email", "", "contactEmail", "contact.email"),
			str("phone", "", "phoneNumber", "contact.phone"),
			str("address", "", "location", "contact.address"),
			str("submitText", "Send message", "buttonText", "submitLabel"),
		},
	},
	"StatsSection": {
		Fields: []Field{
			str("title", "", "heading"),
		},
		Lists: []List{{
			Key:     "stats",
			Aliases: alias("stats", "statistics", "metrics", "items"),
			Item: []Field{
				str("value", "0", "number", "stat", "count"),
				str("label", "", "title", "name"),
				str("description", "", "text", "caption"),
			},
			Title:       "label",
			Placeholder: "Stat %d",
		}},
	},
	"TeamSection": {
		Fields: []Field{
			str("title", "Our Team", "heading"),
			str("subtitle", "", "subheading", "description"),
		},
		Lists: []List{{
			Key:     "members",
			Aliases: alias("members", "team", "people", "teamMembers", "items"),
			Item: []Field{
				str("name", "", "fullName", "title"),
				str("role", "", "position", "jobTitle"),
				str("bio", "", "description", "about"),
				str("avatar", "", "image", "photo", "avatarUrl"),
				str("linkedin", "", "linkedinUrl", "social.linkedin"),
			},
			Title:       "name",
			Placeholder: "Team member %d",
		}},
	},
	"LogoCloudSection": {
		Fields: []Field{
			str("title", "", "heading"),
		},
		Lists: []List{{
			Key:     "logos",
			Aliases: alias("logos", "clients", "partners", "brands", "items"),
			Item: []Field{
				str("name", "", "title", "alt"),
				str("logo", "", "image", "src", "url", "logoUrl"),
				str("link", "", "href", "website"),
			},
			Title:       "name",
			Placeholder: "Logo %d",
		}},
	},
	"VideoSection": {
		Fields: []Field{
			str("title", "", "heading"),
			str("description", "", "subtitle", "text"),
			str("videoUrl", "", "video", "url", "src", "video.url"),
			str("posterImage", "", "poster", "thumbnail", "image", "video.poster"),
			boolean("autoplay", false, "autoPlay"),
		},
	},
	"NewsletterSection": {
		Fields: []Field{
			str("title", "Subscribe to our newsletter", "heading"),
			str("description", "", "subtitle", "text"),
			str("placeholder", "Enter your email", "inputPlaceholder", "emailPlaceholder"),
			str("buttonText", "Subscribe", "ctaText", "submitText", "ctaButton.text"),
			str("disclaimer", "", "note", "privacyNote"),
		},
	},
	"AlertBannerSection": {
		Fields: []Field{
			str("message", "", "text", "title", "content"),
			str("linkText", "", "ctaText", "link.text"),
			str("linkUrl", "", "ctaLink", "href", "link.url"),
			{Key: "variant", Aliases: alias("variant", "type", "level"), Default: "info", As: Variant},
			boolean("dismissible", true, "closable"),
		},
	},
	"ImageTextSection": {
		Fields: []Field{
			str("title", "", "heading"),
			str("content", "", "text", "body", "description"),
			str("image", "", "imageUrl", "image_url", "media"),
			str("imageAlt", "", "alt", "image_alt"),
			str("imagePosition", "right", "layout", "position"),
		},
		Objects: []Object{
			button("ctaButton", "", "", alias("cta", "button"),
				alias("ctaText", "buttonText"), alias("ctaLink", "buttonLink")),
		},
	},
	"RichTextSection": {
		Fields: []Field{
			str("title", "", "heading"),
			str("content", "", "body", "text", "markdown", "html"),
		},
	},
}

func cardList(key, placeholder string, aliases []string) List {
	return List{
		Key:     key,
		Aliases: withKey(key, aliases),
		Item: []Field{
			str("title", "", "name", "heading", "label"),
			str("description", "", "text", "content", "body"),
			str("icon", "", "iconName"),
			str("image", "", "imageUrl", "image_url", "img"),
			str("link", "", "href", "url"),
		},
		Title:       "title",
		Placeholder: placeholder,
	}
}

func stepList() List {
	return List{
		Key:     "steps",
		Aliases: alias("steps", "items", "process", "stages"),
		Item: []Field{
			num("number", 0, "stepNumber", "index"),
			str("title", "", "name", "heading", "step"),
			str("description", "", "text", "content"),
			str("icon", "", "iconName"),
		},
		Title:       "title",
		Placeholder: "Step %d",
		Index:       "number",
	}
}
