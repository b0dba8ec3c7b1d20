package services

import "github.com/promptvault/promptvault-backend/internal/library"

// The starter library: a go-to-market prompt set spanning the four core
// team categories. The ids are stable slugs so repeated seeding is
// idempotent.
var seedCategories = []library.Category{
	{
		ID:   "sales",
		Name: "Sales",
		Subcategories: []library.Subcategory{
			{ID: "discovery", Name: "Discovery"},
			{ID: "objections", Name: "Objections"},
			{ID: "closing", Name: "Closing"},
		},
	},
	{
		ID:   "marketing",
		Name: "Marketing",
		Subcategories: []library.Subcategory{
			{ID: "social", Name: "Social Media"},
			{ID: "email", Name: "Email"},
			{ID: "content", Name: "Content"},
		},
	},
	{
		ID:   "customer-success",
		Name: "Customer Success",
		Subcategories: []library.Subcategory{
			{ID: "onboarding", Name: "Onboarding"},
			{ID: "support", Name: "Support"},
			{ID: "retention", Name: "Retention"},
		},
	},
	{
		ID:   "product",
		Name: "Product",
		Subcategories: []library.Subcategory{
			{ID: "research", Name: "Research"},
			{ID: "messaging", Name: "Messaging"},
		},
	},
}

var seedPrompts = []library.Prompt{
	{
		ID:          "discovery-pain-points",
		Title:       "Pain Point Discovery",
		Description: "Uncover customer pain points and challenges",
		WhenToUse:   "Early in sales cycle to understand prospect challenges",
		Content: `I need to uncover the key pain points of a prospect during a discovery call for {{company_name}}.

Generate 5-7 open-ended questions that will help me identify their current challenges with {{product_category}}, the impact on their business, previous solutions they have tried, and the ideal outcome for {{target_audience}}. Make the questions conversational and non-leading, with a follow-up prompt for each.`,
		CategoryID: "discovery",
		Variables: map[string]library.Variable{
			"company_name":     {Name: "Company Name", Description: "The name of your company", Example: "Acme Corporation"},
			"product_category": {Name: "Product Category", Description: "The category of product or service you're selling", Example: "CRM software"},
			"target_audience":  {Name: "Target Audience", Description: "The specific audience or department you're targeting", Example: "marketing teams"},
		},
	},
	{
		ID:          "discovery-qualification",
		Title:       "BANT Qualification",
		Description: "Qualify prospects using the BANT framework",
		WhenToUse:   "Mid-sales cycle to assess fit and prioritize opportunities",
		Content: `Help me create a BANT qualification framework for my next sales call with {{prospect_company}}.

Generate conversational questions for Budget, Authority, Need and Timeline, focused on {{pain_point}} and our {{product_category}} offering. For each question explain what I am looking for and how to interpret different responses.`,
		CategoryID: "discovery",
		Variables: map[string]library.Variable{
			"prospect_company": {Name: "Prospect Company", Description: "The company you're qualifying", Example: "Acme Inc."},
			"product_category": {Name: "Product Category", Description: "The category of your product/service", Example: "marketing automation"},
			"pain_point":       {Name: "Pain Point", Description: "The main pain point you're addressing", Example: "lead conversion rates"},
		},
	},
	{
		ID:          "objection-pricing",
		Title:       "Price Objection Response",
		Description: "Handle pricing objections effectively",
		WhenToUse:   "When prospects push back on price during negotiations",
		Content: `A prospect at {{prospect_company}} says our {{product_name}} is too expensive compared to {{competitor}}.

Draft three response frameworks: one reframing price as value delivered, one quantifying the cost of inaction, and one offering a phased rollout. Keep the tone collaborative, not defensive.`,
		CategoryID: "objections",
		Variables: map[string]library.Variable{
			"prospect_company": {Name: "Prospect Company", Description: "The company raising the objection", Example: "Globex"},
			"product_name":     {Name: "Product Name", Description: "Your product's name", Example: "PromptVault Pro"},
			"competitor":       {Name: "Competitor", Description: "The competitor being compared against", Example: "a legacy vendor"},
		},
	},
	{
		ID:          "closing-next-steps",
		Title:       "Next Steps Email",
		Description: "Clear follow-up email after a successful demo",
		WhenToUse:   "Within 24 hours of a demo to maintain momentum",
		Content: `Write a follow-up email to {{contact_name}} after today's demo of {{product_name}}.

Recap the two strongest moments of the demo, confirm the agreed evaluation timeline, and propose a concrete next meeting with a single clear call to action.`,
		CategoryID: "closing",
		Variables: map[string]library.Variable{
			"contact_name": {Name: "Contact Name", Description: "The prospect you demoed to", Example: "Jordan Lee"},
			"product_name": {Name: "Product Name", Description: "Your product's name", Example: "PromptVault"},
		},
	},
	{
		ID:          "social-linkedin-post",
		Title:       "LinkedIn Thought Leadership",
		Description: "Engaging LinkedIn post for brand building",
		WhenToUse:   "Weekly posting cadence to build audience",
		Content: `Write a LinkedIn post about {{topic}} for an audience of {{target_audience}}.

Open with a contrarian hook, develop one concrete insight with an example, and close with a question that invites discussion. Under 200 words, no hashtag spam.`,
		CategoryID: "social",
		Variables: map[string]library.Variable{
			"topic":           {Name: "Topic", Description: "The subject of the post", Example: "AI in sales workflows"},
			"target_audience": {Name: "Target Audience", Description: "Who the post should resonate with", Example: "revenue leaders"},
		},
	},
	{
		ID:          "email-follow-up",
		Title:       "Nurture Follow-Up Email",
		Description: "Re-engage a cold lead with value",
		WhenToUse:   "When a lead has gone quiet for two or more weeks",
		Content: `Write a short re-engagement email to {{contact_name}} who downloaded our {{lead_magnet}} but went quiet.

Lead with a useful insight related to {{pain_point}}, avoid guilt-tripping, and offer a low-commitment next step.`,
		CategoryID: "email",
		Variables: map[string]library.Variable{
			"contact_name": {Name: "Contact Name", Description: "The lead's name", Example: "Sam Rivera"},
			"lead_magnet":  {Name: "Lead Magnet", Description: "The content they engaged with", Example: "pricing benchmark report"},
			"pain_point":   {Name: "Pain Point", Description: "The problem your product solves", Example: "slow proposal turnaround"},
		},
	},
	{
		ID:          "content-case-study",
		Title:       "Customer Case Study",
		Description: "Structure a results-focused case study",
		WhenToUse:   "After a customer achieves a measurable win",
		Content: `Outline a case study about {{customer_name}} achieving {{key_result}} with {{product_name}}.

Use the challenge / solution / results structure, include two pull-quote placeholders, and end with a sidebar of three headline metrics.`,
		CategoryID: "content",
		Variables: map[string]library.Variable{
			"customer_name": {Name: "Customer Name", Description: "The featured customer", Example: "Northwind Traders"},
			"key_result":    {Name: "Key Result", Description: "The headline outcome", Example: "40% faster onboarding"},
			"product_name":  {Name: "Product Name", Description: "Your product's name", Example: "PromptVault"},
		},
	},
	{
		ID:          "onboarding-welcome",
		Title:       "Customer Welcome Sequence",
		Description: "First-week onboarding email sequence",
		WhenToUse:   "Immediately after a new customer signs",
		Content: `Draft a three-email welcome sequence for a new {{product_name}} customer in the {{industry}} industry.

Email one: warm welcome and the single most valuable first action. Email two: a quick win tailored to {{use_case}}. Email three: introduce their success contact and set the cadence.`,
		CategoryID: "onboarding",
		Variables: map[string]library.Variable{
			"product_name": {Name: "Product Name", Description: "Your product's name", Example: "PromptVault"},
			"industry":     {Name: "Industry", Description: "The customer's industry", Example: "fintech"},
			"use_case":     {Name: "Use Case", Description: "Their primary use case", Example: "sales enablement"},
		},
	},
	{
		ID:          "support-troubleshooting",
		Title:       "Support Troubleshooting Guide",
		Description: "Structured troubleshooting response for support tickets",
		WhenToUse:   "When responding to technical support requests",
		Content: `Write a support response for a customer reporting {{issue_description}} in {{product_name}}.

Acknowledge the impact first, then walk through diagnostic steps in order of likelihood, and state clearly what to send back if none resolve it.`,
		CategoryID: "support",
		Variables: map[string]library.Variable{
			"issue_description": {Name: "Issue Description", Description: "What the customer reported", Example: "search returning no results"},
			"product_name":      {Name: "Product Name", Description: "Your product's name", Example: "PromptVault"},
		},
	},
	{
		ID:          "retention-at-risk-outreach",
		Title:       "At-Risk Customer Outreach",
		Description: "Re-engage a customer showing churn signals",
		WhenToUse:   "When usage drops or renewal sentiment dips",
		Content: `Draft an outreach message to {{customer_name}}, whose usage of {{product_name}} dropped {{usage_drop}} over the last month.

Be direct about why I am reaching out, reference the outcomes they originally bought for, and propose a working session rather than a generic check-in.`,
		CategoryID: "retention",
		Variables: map[string]library.Variable{
			"customer_name": {Name: "Customer Name", Description: "The at-risk customer", Example: "Initech"},
			"product_name":  {Name: "Product Name", Description: "Your product's name", Example: "PromptVault"},
			"usage_drop":    {Name: "Usage Drop", Description: "How much usage declined", Example: "60%"},
		},
	},
	{
		ID:          "research-competitor-analysis",
		Title:       "Competitor Analysis Framework",
		Description: "Systematic competitive research outline",
		WhenToUse:   "Quarterly competitive reviews or before roadmap planning",
		Content: `Build a competitor analysis framework comparing {{product_name}} against {{competitor_list}}.

Cover positioning, pricing model, feature depth in {{focus_area}}, and customer sentiment. End with the three most defensible differentiators and the biggest exposed gap.`,
		CategoryID: "research",
		Variables: map[string]library.Variable{
			"product_name":    {Name: "Product Name", Description: "Your product's name", Example: "PromptVault"},
			"competitor_list": {Name: "Competitor List", Description: "Competitors to analyze", Example: "PromptBase, Notion AI"},
			"focus_area":      {Name: "Focus Area", Description: "The capability area to go deep on", Example: "team collaboration"},
		},
	},
	{
		ID:          "messaging-value-proposition",
		Title:       "Value Proposition Builder",
		Description: "Sharpen product messaging for a specific segment",
		WhenToUse:   "When entering a new segment or refreshing positioning",
		Content: `Create three value proposition variants for {{product_name}} targeting {{target_segment}}.

Each variant: a one-line headline, a two-sentence supporting statement anchored on {{primary_benefit}}, and the proof point that makes it credible.`,
		CategoryID: "messaging",
		Variables: map[string]library.Variable{
			"product_name":    {Name: "Product Name", Description: "Your product's name", Example: "PromptVault"},
			"target_segment":  {Name: "Target Segment", Description: "The buyer segment", Example: "mid-market sales teams"},
			"primary_benefit": {Name: "Primary Benefit", Description: "The leading benefit to anchor on", Example: "consistent messaging at scale"},
		},
	},
}
