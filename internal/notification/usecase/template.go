package usecase

const welcomeSubject = "Welcome to {{.company_name}}"

const welcomeBody = `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome, {{.name}}!</h2>
  <p>Your {{.company_name}} account is ready. Sign in any time at
  <a href="{{.web_url}}">{{.web_url}}</a>.</p>
  <p>If you did not create this account, contact us at {{.support_email}}.</p>
  <p style="color: #999; font-size: 12px;">&copy; {{.year}} {{.company_name}}</p>
</body>
</html>`

const registrationCompletedSubject = "Your {{.company_name}} registration is complete"

const registrationCompletedBody = `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>All set, {{.name}}!</h2>
  <p>Your profile is complete and you can now log in with your password at
  <a href="{{.web_url}}">{{.web_url}}</a>.</p>
  <p>Questions? Reach us at {{.support_email}}.</p>
  <p style="color: #999; font-size: 12px;">&copy; {{.year}} {{.company_name}}</p>
</body>
</html>`
