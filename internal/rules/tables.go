package rules

// defaultSuspiciousTLDs are top-level domains with a high share of abuse
// registrations (free or near-free TLDs favoured by scam sites).
var defaultSuspiciousTLDs = []string{
	".tk",
	".ml",
	".ga",
	".cf",
	".gq",
	".xyz",
	".top",
	".click",
	".loan",
	".work",
	".men",
	".buzz",
	".icu",
	".rest",
}

// defaultURLShorteners are link-shortening hosts that hide the real destination.
// They are matched as substrings of the domain.
var defaultURLShorteners = []string{
	"bit.ly",
	"tinyurl.com",
	"goo.gl",
	"t.co",
	"ow.ly",
	"is.gd",
	"buff.ly",
	"rebrand.ly",
	"cutt.ly",
	"shorturl.at",
	"tiny.cc",
}

// defaultKeywordCategories group fraud-indicator keywords by lure type.
// Order matters: issues are reported in this order.
var defaultKeywordCategories = []KeywordCategory{
	{
		Name: "scholarship",
		Keywords: []string{
			"guaranteed-scholarship",
			"guaranteed scholarship",
			"free-scholarship",
			"fully funded scholarship guaranteed",
			"scholarship processing fee",
			"scholarship application fee",
			"100% scholarship",
			"no ielts required",
			"study abroad free",
			"visa guaranteed",
		},
	},
	{
		Name: "financial",
		Keywords: []string{
			"bvn",
			"bank verification number",
			"atm pin",
			"send your otp",
			"wire transfer",
			"western union",
			"moneygram",
			"gift card payment",
			"double your money",
			"investment guaranteed",
			"crypto giveaway",
		},
	},
	{
		Name: "government",
		Keywords: []string{
			"government grant",
			"federal government empowerment",
			"cbn grant",
			"efcc clearance",
			"nin verification",
			"npower payment",
			"tax refund approved",
			"covid relief fund",
		},
	},
	{
		Name: "urgency",
		Keywords: []string{
			"act now",
			"limited time offer",
			"expires today",
			"last chance",
			"within 24 hours",
			"urgent action required",
			"only few slots left",
			"offer ends soon",
		},
	},
}

// defaultGenericSuspiciousPatterns are ungrouped phishing phrases.
var defaultGenericSuspiciousPatterns = []string{
	"verify your account",
	"confirm your identity",
	"update your payment",
	"your account has been suspended",
	"click here to claim",
	"you have won",
	"claim your prize",
	"congratulations you have been selected",
	"enter your password",
	"unusual sign-in activity",
}
