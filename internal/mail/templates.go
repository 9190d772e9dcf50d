package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/qzplatform/account-service/internal/model"
)

const (
	subjectWelcome       = "Welcome to QzPlatform!"
	subjectAccountUpdate = "Your QzPlatform Account Has Been Updated"
	subjectPasswordReset = "Password Reset Request - QzPlatform"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<p>Dear {{.FirstName}},</p>
<p>Welcome to QzPlatform! We are thrilled to have you join our community as a {{.Role}}. Your registration was successful, and you are now ready to explore all the features and tools we offer to help you create engaging and effective assessments.</p>
<p>To get started, please log in to your account using your registered email address. We encourage you to take a moment to familiarize yourself with the platform, set up your profile, and begin creating your first test.</p>
<p>If you have any questions or need assistance, our support team is here to help. Do not hesitate to reach out to us at any time.</p>
<p>Best regards,<br><strong>The QzPlatform Team</strong></p>
`))

var temporaryPasswordTmpl = template.Must(template.New("temporary_password").Parse(`
<p>Dear {{.Name}},</p>
<p>Welcome to <strong>QzPlatform</strong>!</p>
<p>Your account has been successfully created. Please log in using the temporary password below and change it immediately after your first login:</p>
<p><strong>Temporary Password:</strong> <code>{{.TempPassword}}</code></p>
<p>If you need assistance, please contact our support team.</p>
<p>Best regards,<br><strong>The QzPlatform Team</strong></p>
`))

var accountUpdatedTmpl = template.Must(template.New("account_updated").Parse(`
<p>Dear {{.Name}},</p>
<p>Your QzPlatform account has been successfully updated.</p>
<p>If you did not request this change, please contact support immediately.</p>
<p>Best regards,<br><strong>The QzPlatform Team</strong></p>
`))

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(`
<p>Dear {{.FirstName}},</p>
<p>We received a request to reset the password for your account on QzPlatform. To proceed with the password reset, please click the link below:</p>
<p><a href="{{.ResetURL}}" target="_blank">{{.ResetURL}}</a></p>
<p>If you did not request a password reset, please disregard this email. Your account security is important to us, and no changes will be made without your confirmation.</p>
<p>If you have any questions or need further assistance, feel free to contact our support team.</p>
<p>Thank you,<br><strong>The QzPlatform Team</strong></p>
`))

// WelcomeMessage is the self-registration greeting.
func WelcomeMessage(account model.Account) (model.MailMessage, error) {
	html, err := render(welcomeTmpl, map[string]string{
		"FirstName": account.FirstName(),
		"Role":      account.Role,
	})
	if err != nil {
		return model.MailMessage{}, err
	}
	return model.MailMessage{To: account.Email, Subject: subjectWelcome, HTML: html}, nil
}

// TemporaryPasswordMessage carries the generated password of a provisioned account.
func TemporaryPasswordMessage(account model.Account, tempPassword string) (model.MailMessage, error) {
	html, err := render(temporaryPasswordTmpl, map[string]string{
		"Name":         account.Name,
		"TempPassword": tempPassword,
	})
	if err != nil {
		return model.MailMessage{}, err
	}
	return model.MailMessage{To: account.Email, Subject: subjectWelcome, HTML: html}, nil
}

// AccountUpdatedMessage notifies the owner of a profile change.
func AccountUpdatedMessage(account model.Account) (model.MailMessage, error) {
	html, err := render(accountUpdatedTmpl, map[string]string{
		"Name": account.Name,
	})
	if err != nil {
		return model.MailMessage{}, err
	}
	return model.MailMessage{To: account.Email, Subject: subjectAccountUpdate, HTML: html}, nil
}

// PasswordResetMessage carries the reset link. The token is embedded in the
// URL and appears nowhere else.
func PasswordResetMessage(account model.Account, resetURL string) (model.MailMessage, error) {
	html, err := render(passwordResetTmpl, map[string]string{
		"FirstName": account.FirstName(),
		"ResetURL":  resetURL,
	})
	if err != nil {
		return model.MailMessage{}, err
	}
	return model.MailMessage{To: account.Email, Subject: subjectPasswordReset, HTML: html}, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render mail template: %w", err)
	}
	return buf.String(), nil
}
