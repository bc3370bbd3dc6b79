package service

import "fmt"

func verifyEmailTemplate(name, verifyURL, appName string) (string, string) {
	subject := fmt.Sprintf("Verify your email for %s", appName)
	body := fmt.Sprintf(`Hi %s,

Thanks for signing up. Please confirm your email address by opening this link:
%s

This link expires in 24 hours.

If you didn't create an account, you can safely ignore this email.

Best,
The %s Team`, name, verifyURL, appName)

	return subject, body
}

func passwordResetEmailTemplate(name, resetURL, appName string) (string, string) {
	subject := fmt.Sprintf("Reset your password for %s", appName)
	body := fmt.Sprintf(`Hi %s,

You requested to reset your password. Choose a new one here:
%s

This link expires in 1 hour and can only be used once.

If you didn't request this, you can safely ignore this email. Your password won't be changed.

Best,
The %s Team`, name, resetURL, appName)

	return subject, body
}

func welcomeEmailTemplate(name, servicesURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your email is verified and your account is active.

Browse our services and start your first application: %s

Best,
The %s Team`, name, servicesURL, appName)

	return subject, body
}

func submissionReceiptTemplate(name, service, reference, profileURL, appName string) (string, string) {
	subject := fmt.Sprintf("We received your %s application", service)
	body := fmt.Sprintf(`Hi %s,

Your %s application has been received.

Reference: %s

Our team will review your documents and contact you by phone or email. You can see your applications at any time on your profile:
%s

Best,
The %s Team`, name, service, reference, profileURL, appName)

	return subject, body
}

func operatorAlertTemplate(applicant, service, reference, dashURL, appName string) (string, string) {
	subject := fmt.Sprintf("[%s] New %s application", appName, service)
	body := fmt.Sprintf(`A new %s application was submitted by %s.

Reference: %s

Review it on the dashboard:
%s`, service, applicant, reference, dashURL)

	return subject, body
}
