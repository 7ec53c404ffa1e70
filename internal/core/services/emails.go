package services

import (
	"fmt"
	"html"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	"github.com/seshego-consulting/portal_backend/pkg/config"
)

// Outbound email bodies. These are written to the mail queue inside the same
// transaction as the state change they announce; a delivery worker drains the
// queue. Recipient-provided values are escaped before interpolation.

func approvalEmail(cfg *config.Config, sub *domain.OnboardingSubmission) domain.Notification {
	contact := html.EscapeString(firstNonEmpty(sub.ContactPerson, "there"))
	company := html.EscapeString(sub.CompanyName)

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Good news: the registration for <strong>%s</strong> has been approved. You can now sign in to the %s and access your documents.</p>
<p><a href="%s">Sign in to the portal</a></p>
<p>Regards,<br/>%s Team</p>`,
		contact, company, cfg.PortalName, cfg.LoginURL(), cfg.PortalName)

	return domain.Notification{
		To:      []string{sub.Email},
		Subject: fmt.Sprintf("%s Access Approved", cfg.PortalName),
		HTML:    body,
	}
}

func rejectionEmail(cfg *config.Config, sub *domain.OnboardingSubmission, reason string) domain.Notification {
	contact := html.EscapeString(firstNonEmpty(sub.ContactPerson, "there"))
	company := html.EscapeString(sub.CompanyName)

	reasonBlock := ""
	if reason != "" {
		reasonBlock = fmt.Sprintf("<p>Reason: %s</p>\n", html.EscapeString(reason))
	}

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Unfortunately the registration for <strong>%s</strong> was not approved at this time.</p>
%s<p>You are welcome to update your details and submit again, or contact us for assistance.</p>
<p>Regards,<br/>%s Team</p>`,
		contact, company, reasonBlock, cfg.PortalName)

	return domain.Notification{
		To:      []string{sub.Email},
		Subject: fmt.Sprintf("%s Registration Update", cfg.PortalName),
		HTML:    body,
	}
}

func employeeInviteEmail(cfg *config.Config, fullName, email, tempPassword, companyName string) domain.Notification {
	name := html.EscapeString(firstNonEmpty(fullName, "there"))
	company := html.EscapeString(firstNonEmpty(companyName, "your company"))

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>An account has been created for you on the %s by %s.</p>
<p>Sign in with:</p>
<ul>
<li>Email: <strong>%s</strong></li>
<li>Temporary password: <strong>%s</strong></li>
</ul>
<p>Please change your password after your first sign-in.</p>
<p><a href="%s">Sign in to the portal</a></p>
<p>Regards,<br/>%s Team</p>`,
		name, cfg.PortalName, company, html.EscapeString(email), html.EscapeString(tempPassword), cfg.LoginURL(), cfg.PortalName)

	return domain.Notification{
		To:      []string{email},
		Subject: fmt.Sprintf("%s — Your Employee Access", cfg.PortalName),
		HTML:    body,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
