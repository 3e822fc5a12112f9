package secrets

// Rule describes one secret pattern. Rules are ordered: when two rules match
// overlapping spans, the rule that appears earlier in the table wins.
type Rule struct {
	ID           string   `json:"id"`
	Description  string   `json:"description,omitempty"`
	Pattern      string   `json:"pattern"`
	Keywords     []string `json:"keywords,omitempty"`
	Entropy      float64  `json:"entropy,omitempty"`
	RejectAllHex bool     `json:"reject_all_hex,omitempty"`
	RejectPaths  bool     `json:"reject_paths,omitempty"`
}

// DefaultRules returns the built-in rule table.
//
// Rules with no keywords always run. Keyword-gated rules only run when one of
// their keywords appears (case-insensitive) in the content, which lets the
// engine skip the expensive generic patterns for ordinary prose. The entropy
// thresholds are in bits per character of the matched secret value.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:          "anthropic-api-key",
			Description: "Anthropic API key",
			Pattern:     `sk-ant-api\d{2}-[A-Za-z0-9_-]{95}`,
		},
		{
			ID:          "openai-api-key",
			Description: "OpenAI API key",
			Pattern:     `sk-[A-Za-z0-9]{48}`,
		},
		{
			ID:          "aws-access-token",
			Description: "AWS access key ID",
			Pattern:     `\b(?:AKIA|ASIA|ABIA|ACCA)[0-9A-Z]{16}\b`,
			Entropy:     3.0,
		},
		{
			ID:          "aws-secret-key",
			Description: "AWS secret access key assignment",
			Pattern:     `(?i)aws_secret_access_key\s*[=:]\s*["']?([A-Za-z0-9/+=]{40})["']?`,
			Keywords:    []string{"aws_secret"},
			Entropy:     3.0,
		},
		{
			ID:          "github-pat",
			Description: "GitHub personal access token",
			Pattern:     `ghp_[A-Za-z0-9]{36}`,
			Keywords:    []string{"ghp_"},
		},
		{
			ID:          "github-oauth",
			Description: "GitHub OAuth access token",
			Pattern:     `gho_[A-Za-z0-9]{36}`,
			Keywords:    []string{"gho_"},
		},
		{
			ID:          "github-app-token",
			Description: "GitHub app installation token",
			Pattern:     `gh[us]_[A-Za-z0-9]{36}`,
			Keywords:    []string{"ghu_", "ghs_"},
		},
		{
			ID:          "github-refresh-token",
			Description: "GitHub refresh token",
			Pattern:     `ghr_[A-Za-z0-9]{36}`,
			Keywords:    []string{"ghr_"},
		},
		{
			ID:          "github-fine-grained-pat",
			Description: "GitHub fine-grained personal access token",
			Pattern:     `github_pat_[A-Za-z0-9_]{82}`,
			Keywords:    []string{"github_pat_"},
		},
		{
			ID:          "slack-webhook-url",
			Description: "Slack incoming webhook URL",
			Pattern:     `https://hooks\.slack\.com/(?:services|workflows|triggers)/[A-Za-z0-9+/_-]{20,}`,
			Keywords:    []string{"hooks.slack.com"},
		},
		{
			ID:          "slack-token",
			Description: "Slack bot/user/app token",
			Pattern:     `xox[baprs]-[0-9a-zA-Z-]{10,72}`,
			Keywords:    []string{"xox"},
		},
		{
			ID:          "stripe-live-key",
			Description: "Stripe live secret key",
			Pattern:     `sk_live_[0-9a-zA-Z]{24,}`,
			Keywords:    []string{"sk_live_"},
		},
		{
			ID:          "google-api-key",
			Description: "Google Cloud API key",
			Pattern:     `AIza[0-9A-Za-z_-]{35}`,
			Keywords:    []string{"aiza"},
		},
		{
			ID:          "sendgrid-api-key",
			Description: "SendGrid API key",
			Pattern:     `SG\.[A-Za-z0-9_-]{22}\.[A-Za-z0-9_-]{43}`,
			Keywords:    []string{"sg."},
		},
		{
			ID:          "twilio-api-key",
			Description: "Twilio API key SID",
			Pattern:     `\bSK[0-9a-fA-F]{32}\b`,
			Keywords:    []string{"twilio"},
		},
		{
			ID:          "npm-access-token",
			Description: "npm access token",
			Pattern:     `npm_[A-Za-z0-9]{36}`,
			Keywords:    []string{"npm_"},
		},
		{
			ID:          "pypi-upload-token",
			Description: "PyPI upload token",
			Pattern:     `pypi-AgEIcHlwaS5vcmc[A-Za-z0-9_-]{50,}`,
			Keywords:    []string{"pypi-"},
		},
		{
			ID:          "jwt",
			Description: "JSON Web Token",
			Pattern:     `eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`,
			Keywords:    []string{"eyj"},
		},
		{
			ID:          "private-key",
			Description: "PEM private key header",
			Pattern:     `-----BEGIN (?:RSA |EC |DSA |PGP |OPENSSH )?PRIVATE KEY(?: BLOCK)?-----`,
			Keywords:    []string{"private key"},
		},
		{
			ID:          "connection-string-password",
			Description: "Database connection URL with inline credentials",
			Pattern:     `(?i)\b(?:postgres(?:ql)?|mysql|mongodb(?:\+srv)?|redis|amqp)://[^:/\s]+:([^@\s]+)@[^\s"']+`,
			Keywords:    []string{"://"},
		},
		{
			ID:          "generic-api-key",
			Description: "API key assignment",
			Pattern:     `(?i)\b(?:api[_-]?key|apikey)["']?\s*(?:[:=]|=>)\s*["']?([A-Za-z0-9_\-+/=.]{16,80})["']?`,
			Keywords:    []string{"api_key", "api-key", "apikey"},
			Entropy:     3.5,
		},
		{
			ID:           "generic-secret",
			Description:  "Generic high-entropy secret near a credential keyword",
			Pattern:      `[A-Za-z0-9+/=_\-.]{20,}`,
			Keywords:     []string{"secret", "token", "password", "passwd", "credential", "bearer", "private_key", "access_key"},
			Entropy:      3.5,
			RejectAllHex: true,
			RejectPaths:  true,
		},
	}
}
