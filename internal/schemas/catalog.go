package schemas

import "page-builder-backend/internal/content"

type (
	obj = map[string]interface{}
	arr = []interface{}
)

// Palette groups.
const (
	CategoryHero        = "hero"
	CategoryContent     = "content"
	CategorySocialProof = "social-proof"
	CategoryConversion  = "conversion"
	CategoryMedia       = "media"
	CategoryData        = "data"
)

func builtinCatalog() []Entry {
	return []Entry{
		{
			Type:        "PayrollHeroSection",
			Name:        "Payroll Hero",
			Category:    CategoryHero,
			Description: "Headline banner with two calls to action and a product image.",
			Defaults: content.Map{
				"title":           "Payroll that runs itself",
				"subtitle":        "Pay your team on time, every time",
				"description":     "Automate salaries, taxes and filings in one place.",
				"ctaButton":       obj{"text": "Get started", "link": "/signup"},
				"secondaryButton": obj{"text": "Book a demo", "link": "/demo"},
				"backgroundImage": "",
				"image":           "",
			},
			Schema: object(obj{
				"title":           text(""),
				"subtitle":        text(""),
				"description":     longText(),
				"ctaButton":       button("Get started", "/signup"),
				"secondaryButton": button("Book a demo", "/demo"),
				"backgroundImage": image(),
				"image":           image(),
			}, "title"),
		},
		{
			Type:        "HRHeroSection",
			Name:        "HR Hero",
			Category:    CategoryHero,
			Description: "People-platform hero with a single call to action.",
			Defaults: content.Map{
				"title":       "Everything HR, in one place",
				"subtitle":    "Hire, onboard and grow your people",
				"description": "Replace spreadsheets with a single source of truth for your team.",
				"ctaButton":   obj{"text": "Start free trial", "link": "/signup"},
				"image":       "",
			},
			Schema: object(obj{
				"title":       text(""),
				"subtitle":    text(""),
				"description": longText(),
				"ctaButton":   button("Start free trial", "/signup"),
				"image":       image(),
			}, "title"),
		},
		{
			Type:        "FAQSection",
			Name:        "FAQ",
			Category:    CategoryContent,
			Description: "Frequently asked questions as an accordion.",
			Defaults: content.Map{
				"title":    "Frequently asked questions",
				"subtitle": "Everything you need to know",
				"faqs": arr{
					obj{"question": "How long does setup take?", "answer": "Most teams run their first payroll within a day."},
					obj{"question": "Can I import my existing data?", "answer": "Yes, upload a spreadsheet or connect your previous provider."},
					obj{"question": "Is there a contract?", "answer": "No. Plans are month to month and can be cancelled anytime."},
				},
			},
			Schema: object(obj{
				"title":    text(""),
				"subtitle": text(""),
				"faqs": list(object(obj{
					"question": text(""),
					"answer":   longText(),
				}, "question")),
			}),
		},
		{
			Type:        "PricingSection",
			Name:        "Pricing",
			Category:    CategoryConversion,
			Description: "Plan comparison with feature lists and per-plan buttons.",
			Defaults: content.Map{
				"title":    "Simple, transparent pricing",
				"subtitle": "Choose the plan that fits your team",
				"plans": arr{
					obj{
						"name":        "Starter",
						"price":       "$29",
						"period":      "per month",
						"description": "For small teams getting started.",
						"features":    arr{"Up to 10 employees", "Automatic tax filing", "Email support"},
						"ctaText":     "Choose Starter",
						"ctaLink":     "/signup?plan=starter",
						"highlighted": false,
					},
					obj{
						"name":        "Growth",
						"price":       "$79",
						"period":      "per month",
						"description": "For growing companies.",
						"features":    arr{"Up to 100 employees", "Benefits administration", "Priority support"},
						"ctaText":     "Choose Growth",
						"ctaLink":     "/signup?plan=growth",
						"highlighted": true,
					},
				},
			},
			Schema: object(obj{
				"title":    text(""),
				"subtitle": text(""),
				"plans": list(object(obj{
					"name":        text(""),
					"price":       text(""),
					"period":      text(""),
					"description": longText(),
					"features":    list(text("")),
					"ctaText":     text(""),
					"ctaLink":     link(""),
					"highlighted": schemaNode{"type": "boolean"},
				}, "name", "price")),
			}),
		},
		{
			Type:        "BenefitsSection",
			Name:        "Benefits",
			Category:    CategoryContent,
			Description: "Grid of benefit cards with icons.",
			Defaults: content.Map{
				"title":    "Why teams switch",
				"subtitle": "Less admin, more time for your people",
				"benefits": arr{
					obj{"title": "Save hours every month", "description": "Payroll runs automatically on schedule.", "icon": "clock"},
					obj{"title": "Stay compliant", "description": "Tax rules are kept up to date for you.", "icon": "shield"},
					obj{"title": "Happier employees", "description": "Self-service payslips and time off.", "icon": "smile"},
				},
			},
			Schema: object(obj{
				"title":    text(""),
				"subtitle": text(""),
				"benefits": list(object(obj{
					"title":       text(""),
					"description": longText(),
					"icon":        text(""),
				})),
			}),
		},
		{
			Type:        "FeaturesSection",
			Name:        "Features",
			Category:    CategoryContent,
			Description: "Feature highlights with optional images.",
			Defaults: content.Map{
				"title":    "Built for modern teams",
				"subtitle": "All the tools you need",
				"features": arr{
					obj{"title": "Automatic payroll", "description": "Set it once and forget it.", "icon": "repeat", "image": ""},
					obj{"title": "Time tracking", "description": "Hours flow straight into payroll.", "icon": "timer", "image": ""},
					obj{"title": "Reports", "description": "Export labour costs in one click.", "icon": "chart", "image": ""},
				},
			},
			Schema: object(obj{
				"title":    text(""),
				"subtitle": text(""),
				"features": list(object(obj{
					"title":       text(""),
					"description": longText(),
					"icon":        text(""),
					"image":       image(),
				})),
			}),
		},
		{
			Type:        "HowItWorksSection",
			Name:        "How It Works",
			Category:    CategoryContent,
			Description: "Numbered steps explaining a process.",
			Defaults: content.Map{
				"title":    "How it works",
				"subtitle": "Get up and running in three steps",
				"steps": arr{
					obj{"number": float64(1), "title": "Create your account", "description": "Sign up in under two minutes."},
					obj{"number": float64(2), "title": "Add your team", "description": "Invite employees or import a spreadsheet."},
					obj{"number": float64(3), "title": "Run payroll", "description": "Review and approve with one click."},
				},
			},
			Schema: object(obj{
				"title":    text(""),
				"subtitle": text(""),
				"steps": list(object(obj{
					"number":      number(1),
					"title":       text(""),
					"description": longText(),
				})),
			}),
		},
		{
			Type:        "PayrollHowItWorksSection",
			Name:        "Payroll How It Works",
			Category:    CategoryContent,
			Description: "Payroll onboarding steps with icons.",
			Defaults: content.Map{
				"title":    "Payroll in four steps",
				"subtitle": "From signup to payday",
				"steps": arr{
					obj{"title": "Connect your bank", "description": "Securely link the account you pay from.", "icon": "bank"},
					obj{"title": "Add employees", "description": "Enter salaries, hours and tax details.", "icon": "users"},
					obj{"title": "Approve the run", "description": "Check totals before anything is paid.", "icon": "check"},
					obj{"title": "Get paid", "description": "Money arrives on payday.", "icon": "wallet"},
				},
			},
			Schema: object(obj{
				"title":    text(""),
				"subtitle": text(""),
				"steps": list(object(obj{
					"title":       text(""),
					"description": longText(),
					"icon":        text(""),
				})),
			}),
		},
		{
			Type:        "TestimonialsSection",
			Name:        "Testimonials",
			Category:    CategorySocialProof,
			Description: "Customer quotes with author details.",
			Defaults: content.Map{
				"title": "Loved by finance teams",
				"testimonials": arr{
					obj{"quote": "We cut payroll time from two days to twenty minutes.", "author": "Dana Whitfield", "role": "Finance Lead", "company": "Northwind", "avatar": "", "rating": float64(5)},
					obj{"quote": "Setup was painless and support is fantastic.", "author": "Sam Okafor", "role": "Operations Manager", "company": "Brightline", "avatar": "", "rating": float64(5)},
				},
			},
			Schema: object(obj{
				"title": text(""),
				"testimonials": list(object(obj{
					"quote":   longText(),
					"author":  text(""),
					"role":    text(""),
					"company": text(""),
					"avatar":  image(),
					"rating":  schemaNode{"type": "number", "minimum": 0, "maximum": 5},
				}, "quote")),
			}),
		},
		{
			Type:        "CTASection",
			Name:        "Call To Action",
			Category:    CategoryConversion,
			Description: "Closing banner with primary and secondary buttons.",
			Defaults: content.Map{
				"title":           "Ready to simplify payroll?",
				"description":     "Join thousands of businesses paying their teams with confidence.",
				"ctaButton":       obj{"text": "Start now", "link": "/signup"},
				"secondaryButton": obj{"text": "Talk to sales", "link": "/contact"},
				"variant":         "primary",
			},
			Schema: object(obj{
				"title":           text(""),
				"description":     longText(),
				"ctaButton":       button("Start now", "/signup"),
				"secondaryButton": button("Talk to sales", "/contact"),
				"variant":         variant(),
			}, "title"),
		},
		{
			Type:        "ContactSection",
			Name:        "Contact",
			Category:    CategoryConversion,
			Description: "Contact details with a message form.",
			Defaults: content.Map{
				"title":       "Get in touch",
				"description": "Our team usually replies within one business day.",
				"email":       "hello@example.com",
				"phone":       "+1 (555) 010-2030",
				"address":     "100 Market Street, San Francisco, CA",
				"submitText":  "Send message",
			},
			Schema: object(obj{
				"title":       text(""),
				"description": longText(),
				"email":       email(),
				"phone":       text(""),
				"address":     text(""),
				"submitText":  text("Send message"),
			}),
		},
		{
			Type:        "StatsSection",
			Name:        "Stats",
			Category:    CategoryData,
			Description: "Headline numbers.",
			Defaults: content.Map{
				"title": "Trusted at scale",
				"stats": arr{
					obj{"value": "12,000+", "label": "Businesses", "description": "run payroll with us"},
					obj{"value": "$4B", "label": "Paid out", "description": "every year"},
					obj{"value": "99.9%", "label": "On-time payments", "description": "since launch"},
				},
			},
			Schema: object(obj{
				"title": text(""),
				"stats": list(object(obj{
					"value":       text(""),
					"label":       text(""),
					"description": text(""),
				}, "value", "label")),
			}),
		},
		{
			Type:        "TeamSection",
			Name:        "Team",
			Category:    CategorySocialProof,
			Description: "Team member profiles.",
			Defaults: content.Map{
				"title":    "Meet the team",
				"subtitle": "The people behind the product",
				"members": arr{
					obj{"name": "Alex Rivera", "role": "Chief Executive", "bio": "Previously led payroll at a large fintech.", "avatar": "", "linkedin": ""},
					obj{"name": "Priya Nair", "role": "Head of Product", "bio": "Ten years building tools for finance teams.", "avatar": "", "linkedin": ""},
				},
			},
			Schema: object(obj{
				"title":    text(""),
				"subtitle": text(""),
				"members": list(object(obj{
					"name":     text(""),
					"role":     text(""),
					"bio":      longText(),
					"avatar":   image(),
					"linkedin": link(""),
				}, "name")),
			}),
		},
		{
			Type:        "LogoCloudSection",
			Name:        "Logo Cloud",
			Category:    CategorySocialProof,
			Description: "Row of customer or partner logos.",
			Defaults: content.Map{
				"title": "Trusted by",
				"logos": arr{
					obj{"name": "Northwind", "logo": "", "link": ""},
					obj{"name": "Brightline", "logo": "", "link": ""},
					obj{"name": "Contoso", "logo": "", "link": ""},
				},
			},
			Schema: object(obj{
				"title": text(""),
				"logos": list(object(obj{
					"name": text(""),
					"logo": image(),
					"link": link(""),
				})),
			}),
		},
		{
			Type:        "TimelineSection",
			Name:        "Timeline",
			Category:    CategoryContent,
			Description: "Dated milestones.",
			Defaults: content.Map{
				"title": "Our story",
				"events": arr{
					obj{"date": "2019", "title": "Founded", "description": "Started in a garage with three people."},
					obj{"date": "2021", "title": "1,000 customers", "description": "Crossed our first big milestone."},
					obj{"date": "2024", "title": "Global payroll", "description": "Now paying teams in 40 countries."},
				},
			},
			Schema: object(obj{
				"title": text(""),
				"events": list(object(obj{
					"date":        text(""),
					"title":       text(""),
					"description": longText(),
				})),
			}),
		},
		{
			Type:        "ServicesGridSection",
			Name:        "Services Grid",
			Category:    CategoryContent,
			Description: "Linked service cards.",
			Defaults: content.Map{
				"title":    "What we offer",
				"subtitle": "Services for every stage",
				"services": arr{
					obj{"title": "Payroll", "description": "Full-service payroll and filings.", "icon": "cash", "link": "/payroll"},
					obj{"title": "Benefits", "description": "Health, pension and perks.", "icon": "heart", "link": "/benefits"},
					obj{"title": "HR", "description": "Onboarding, documents and time off.", "icon": "briefcase", "link": "/hr"},
				},
			},
			Schema: object(obj{
				"title":    text(""),
				"subtitle": text(""),
				"services": list(object(obj{
					"title":       text(""),
					"description": longText(),
					"icon":        text(""),
					"link":        link(""),
				})),
			}),
		},
		{
			Type:        "VideoSection",
			Name:        "Video",
			Category:    CategoryMedia,
			Description: "Embedded product video with a poster image.",
			Defaults: content.Map{
				"title":       "See it in action",
				"description": "A two-minute tour of the product.",
				"videoUrl":    "",
				"posterImage": "",
			},
			Schema: object(obj{
				"title":       text(""),
				"description": longText(),
				"videoUrl":    video(),
				"posterImage": image(),
				"autoplay":    flag(false),
			}),
		},
		{
			Type:        "NewsletterSection",
			Name:        "Newsletter",
			Category:    CategoryConversion,
			Description: "Email signup form.",
			Defaults: content.Map{
				"title":       "Stay in the loop",
				"description": "Product news and payroll tips, once a month.",
				"placeholder": "you@company.com",
				"buttonText":  "Subscribe",
				"disclaimer":  "We respect your privacy. Unsubscribe anytime.",
			},
			Schema: object(obj{
				"title":       text(""),
				"description": longText(),
				"placeholder": text(""),
				"buttonText":  text("Subscribe"),
				"disclaimer":  text(""),
			}),
		},
		{
			Type:        "AlertBannerSection",
			Name:        "Alert Banner",
			Category:    CategoryConversion,
			Description: "Thin announcement bar.",
			Defaults: content.Map{
				"message":  "New: year-end tax forms are now available.",
				"linkText": "Learn more",
				"linkUrl":  "/blog/year-end",
				"variant":  "info",
			},
			Schema: object(obj{
				"message":     text(""),
				"linkText":    text(""),
				"linkUrl":     link(""),
				"variant":     choice("info", "primary", "secondary", "success", "warning", "danger", "info"),
				"dismissible": flag(true),
			}, "message"),
		},
		{
			Type:        "ImageTextSection",
			Name:        "Image and Text",
			Category:    CategoryMedia,
			Description: "Image beside a block of formatted text.",
			Defaults: content.Map{
				"title":     "Payroll your accountant will love",
				"content":   "Give your accountant **read-only access** and export reports in the format they need.",
				"image":     "",
				"imageAlt":  "",
				"ctaButton": obj{"text": "Learn more", "link": "/accountants"},
			},
			Schema: object(obj{
				"title":         text(""),
				"content":       longText(),
				"image":         image(),
				"imageAlt":      text(""),
				"imagePosition": choice("right", "left", "right"),
				"ctaButton":     button("Learn more", "/accountants"),
			}),
		},
		{
			Type:        "RichTextSection",
			Name:        "Rich Text",
			Category:    CategoryContent,
			Description: "Free-form Markdown content.",
			Defaults: content.Map{
				"title":   "",
				"content": "## About us\n\nWrite anything here. **Markdown** is supported.",
			},
			Schema: object(obj{
				"title":   text(""),
				"content": longText(),
			}),
		},
		{
			Type:        "CardsSection",
			Name:        "Cards",
			Category:    CategoryContent,
			Description: "Generic cards with image, text and link.",
			Defaults: content.Map{
				"title": "Resources",
				"cards": arr{
					obj{"title": "Payroll guide", "description": "Everything about running payroll.", "image": "", "link": "/guides/payroll"},
					obj{"title": "Tax calendar", "description": "Never miss a filing deadline.", "image": "", "link": "/guides/tax-calendar"},
				},
			},
			Schema: object(obj{
				"title": text(""),
				"cards": list(object(obj{
					"title":       text(""),
					"description": longText(),
					"image":       image(),
					"link":        link(""),
				})),
			}),
		},
	}
}
