package services

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"omi-stitch-api/models"
	"omi-stitch-api/utils"
)

type emailMetaItem struct {
	Label string
	Value string
}

// emailContent is one composed message body pair plus its subject.
type emailContent struct {
	Subject   string
	BodyHTML  string
	BodyPlain string
}

const (
	brandDark = "#112116"
	brandGold = "#B4941E"
)

// buildEmailHTML renders the branded transactional shell: OMI header, a
// status badge, greeting, body paragraphs, an optional detail table, the
// "what happens next" steps, an optional action button and the standard
// footer. All dynamic values are escaped.
func buildEmailHTML(subject, badge, greeting string, paragraphs []string, meta []emailMetaItem, steps []string, buttonText, buttonURL string) string {
	esc := template.HTMLEscapeString

	var body strings.Builder
	for _, p := range paragraphs {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		body.WriteString(`<p style="margin:0 0 18px 0;color:#4a5568;font-size:16px;line-height:26px;">`)
		body.WriteString(strings.ReplaceAll(esc(trimmed), "\n", "<br />"))
		body.WriteString(`</p>`)
	}

	metaSection := ""
	if rows := nonEmptyMeta(meta); len(rows) > 0 {
		var mb strings.Builder
		mb.WriteString(`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="background-color:#fafbfa;border-radius:12px;border:1px solid #e2e8f0;margin:0 0 24px 0;">`)
		mb.WriteString(fmt.Sprintf(`<tr><td style="padding:16px 24px 8px;"><h3 style="margin:0;color:%s;font-size:14px;font-weight:600;text-transform:uppercase;letter-spacing:1px;"><span style="color:%s;">&#9670;</span> Your Submission</h3></td></tr>`, brandDark, brandGold))
		for _, row := range rows {
			mb.WriteString(fmt.Sprintf(`<tr><td style="padding:10px 24px;"><p style="margin:0 0 4px;color:#718096;font-size:12px;text-transform:uppercase;letter-spacing:1px;">%s</p><p style="margin:0;color:%s;font-size:15px;font-weight:600;">%s</p></td></tr>`,
				esc(row.Label), brandDark, esc(row.Value)))
		}
		mb.WriteString(`<tr><td style="padding:8px;"></td></tr></table>`)
		metaSection = mb.String()
	}

	stepsSection := ""
	if len(steps) > 0 {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf(`<h3 style="margin:0 0 15px;color:%s;font-size:18px;font-weight:600;">What happens next?</h3>`, brandDark))
		for i, step := range steps {
			sb.WriteString(fmt.Sprintf(`<table role="presentation" cellpadding="0" cellspacing="0" style="margin-bottom:12px;"><tr><td style="width:32px;height:32px;background-color:%s;border-radius:50%%;text-align:center;vertical-align:middle;"><span style="color:#ffffff;font-size:14px;font-weight:700;">%d</span></td><td style="padding-left:15px;"><p style="margin:0;color:%s;font-size:15px;font-weight:500;">%s</p></td></tr></table>`,
				brandGold, i+1, brandDark, esc(step)))
		}
		stepsSection = sb.String()
	}

	buttonSection := ""
	if buttonText != "" && buttonURL != "" {
		buttonSection = fmt.Sprintf(`<div style="text-align:center;margin:8px 0 24px 0;"><a href="%s" style="display:inline-block;padding:13px 32px;background-color:%s;color:#ffffff;text-decoration:none;border-radius:999px;font-weight:600;font-size:15px;">%s</a></div>`,
			esc(buttonURL), brandGold, esc(buttonText))
	}

	badgeSection := ""
	if badge != "" {
		badgeSection = fmt.Sprintf(`<div style="text-align:center;margin-bottom:24px;"><span style="display:inline-block;background-color:#e8f5e9;color:#2e7d32;border-radius:30px;padding:10px 24px;font-size:14px;font-weight:600;">%s</span></div>`, esc(badge))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
</head>
<body style="margin:0;padding:0;font-family:'Segoe UI',Tahoma,Geneva,Verdana,sans-serif;background-color:#f6f8f6;">
<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f6f8f6;">
<tr><td align="center" style="padding:40px 20px;">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="max-width:600px;width:100%%;background-color:#ffffff;border-radius:16px;overflow:hidden;box-shadow:0 4px 24px rgba(0,0,0,0.08);">
<tr><td style="background:linear-gradient(135deg, %s 0%%, #1a2f20 100%%);padding:40px 40px 30px;text-align:center;">
%s
<h1 style="margin:0;color:%s;font-size:28px;font-weight:700;letter-spacing:2px;">OMI GLOBAL</h1>
<p style="margin:8px 0 0;color:rgba(255,255,255,0.7);font-size:13px;letter-spacing:3px;text-transform:uppercase;">PRODUCTIONS</p>
</td></tr>
<tr><td style="padding:30px 40px 30px;">
%s
<h2 style="margin:0 0 20px;color:%s;font-size:24px;font-weight:600;text-align:center;">%s</h2>
%s
%s
%s
%s
<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" style="background-color:#fffbeb;border-radius:8px;border-left:4px solid %s;margin-top:8px;"><tr><td style="padding:16px 20px;"><p style="margin:0;color:#92400e;font-size:14px;line-height:22px;"><strong>Have questions?</strong> Simply reply to this email and our team will be happy to assist you.</p></td></tr></table>
</td></tr>
<tr><td style="padding:0 40px;"><hr style="border:none;border-top:1px solid #e2e8f0;margin:0;"></td></tr>
<tr><td style="padding:30px 40px;text-align:center;">
<p style="margin:0 0 10px;color:%s;font-size:16px;font-weight:700;letter-spacing:1px;">OMI GLOBAL PRODUCTIONS</p>
<p style="margin:0 0 15px;color:#718096;font-size:13px;">Storytelling &bull; Wellness &bull; Sustainability</p>
<p style="margin:0;color:#a0aec0;font-size:12px;line-height:20px;">&copy; %d OMI Global Productions. All rights reserved.<br>This is a transactional email regarding your project submission.</p>
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`,
		esc(subject), brandDark, emailLogoHTML(), brandGold,
		badgeSection, brandDark, esc(greeting),
		body.String(), metaSection, stepsSection, buttonSection,
		brandGold, brandGold, time.Now().Year())
}

// buildEmailPlain renders the text/plain fallback in the same order as the
// HTML part.
func buildEmailPlain(heading, greeting string, paragraphs []string, meta []emailMetaItem, steps []string, linkLabel, linkURL string) string {
	var b strings.Builder
	b.WriteString("OMI GLOBAL PRODUCTIONS\n")
	b.WriteString("======================\n\n")
	if heading != "" {
		b.WriteString(strings.ToUpper(heading) + "\n")
		b.WriteString(strings.Repeat("-", len(heading)) + "\n\n")
	}
	if greeting != "" {
		b.WriteString(greeting + "\n\n")
	}
	for _, p := range paragraphs {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			b.WriteString(trimmed + "\n\n")
		}
	}
	if rows := nonEmptyMeta(meta); len(rows) > 0 {
		b.WriteString("YOUR SUBMISSION DETAILS\n-----------------------\n")
		for _, row := range rows {
			b.WriteString(fmt.Sprintf("%s: %s\n", row.Label, row.Value))
		}
		b.WriteString("\n")
	}
	if len(steps) > 0 {
		b.WriteString("WHAT HAPPENS NEXT?\n------------------\n")
		for i, step := range steps {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
		b.WriteString("\n")
	}
	if linkLabel != "" && linkURL != "" {
		b.WriteString(fmt.Sprintf("%s: %s\n\n", linkLabel, linkURL))
	}
	b.WriteString("Have questions? Simply reply to this email and our team will be happy to assist you.\n\n---\n\n")
	b.WriteString("OMI GLOBAL PRODUCTIONS\nStorytelling | Wellness | Sustainability\n\n")
	b.WriteString(fmt.Sprintf("(c) %d OMI Global Productions. All rights reserved.\nThis is a transactional email regarding your project submission.", time.Now().Year()))
	return b.String()
}

var reviewSteps = []string{
	"Our creative team reviews your submission",
	"We evaluate alignment with our creative vision",
	"You'll hear from us within 5-7 business days",
}

func composeConfirmation(sub *models.ProjectSubmission, trackingURL string) emailContent {
	subject := "Your Project Submission Has Been Received"
	if sub.Title != "" {
		subject = fmt.Sprintf("We've Received Your Project: %s", sub.Title)
	}

	greeting := fmt.Sprintf("Hello %s,", sub.GreetingName())
	paragraphs := []string{
		"Thank you for sharing your creative vision with us. Your project submission has been successfully received and is now in our review queue.",
	}

	meta := []emailMetaItem{
		{Label: "Project Title", Value: sub.Title},
		{Label: "Logline", Value: derefString(sub.Logline)},
		{Label: "Budget", Value: utils.FormatBudgetPtr(sub.Budget)},
		{Label: "Languages", Value: derefString(sub.Languages)},
		{Label: "Cast Recommendations", Value: strings.Join(sub.ActorNames(), ", ")},
	}

	return emailContent{
		Subject:   subject,
		BodyHTML:  buildEmailHTML(subject, "✓ Submission Received", greeting, paragraphs, meta, reviewSteps, "Track Your Submission", trackingURL),
		BodyPlain: buildEmailPlain("Submission Received", greeting, paragraphs, meta, reviewSteps, "Track your submission", trackingURL),
	}
}

func composeStatusUpdate(sub *models.ProjectSubmission, trackingURL string) emailContent {
	subject := fmt.Sprintf("Update on Your Project: %s", sub.Title)
	greeting := fmt.Sprintf("Hello %s,", sub.GreetingName())
	paragraphs := []string{
		fmt.Sprintf("There is an update on %q.", sub.Title),
		utils.StatusLine(sub.Status),
	}
	meta := []emailMetaItem{
		{Label: "Project Title", Value: sub.Title},
		{Label: "Current Status", Value: titleCase(sub.Status)},
		{Label: "Reviewed On", Value: utils.FormatDatePtr(sub.ReviewedAt)},
	}
	badge := fmt.Sprintf("Status: %s", titleCase(sub.Status))

	return emailContent{
		Subject:   subject,
		BodyHTML:  buildEmailHTML(subject, badge, greeting, paragraphs, meta, nil, "View Your Submission", trackingURL),
		BodyPlain: buildEmailPlain("Status Update", greeting, paragraphs, meta, nil, "View your submission", trackingURL),
	}
}

func composeCommentReply(sub *models.ProjectSubmission, comment *models.SubmissionComment, trackingURL string) emailContent {
	subject := fmt.Sprintf("New Message About Your Project: %s", sub.Title)
	greeting := fmt.Sprintf("Hello %s,", sub.GreetingName())
	paragraphs := []string{
		fmt.Sprintf("Our team has posted a new message on %q:", sub.Title),
		comment.Message,
		"You can reply from your tracking page.",
	}

	return emailContent{
		Subject:   subject,
		BodyHTML:  buildEmailHTML(subject, "New Message", greeting, paragraphs, nil, nil, "View Conversation", trackingURL),
		BodyPlain: buildEmailPlain("New Message", greeting, paragraphs, nil, nil, "View the conversation", trackingURL),
	}
}

func composeAdminNewSubmission(sub *models.ProjectSubmission) emailContent {
	subject := fmt.Sprintf("New Project Submission: %s", sub.Title)
	greeting := "Hello,"
	paragraphs := []string{
		"A new project submission has arrived and is waiting for review.",
	}
	meta := []emailMetaItem{
		{Label: "Project Title", Value: sub.Title},
		{Label: "Logline", Value: derefString(sub.Logline)},
		{Label: "Budget", Value: utils.FormatBudgetPtr(sub.Budget)},
		{Label: "Contact", Value: sub.ContactName},
		{Label: "Email", Value: sub.ContactEmail},
		{Label: "Phone", Value: sub.ContactPhone},
	}

	return emailContent{
		Subject:   subject,
		BodyHTML:  buildEmailHTML(subject, "New Submission", greeting, paragraphs, meta, nil, "", ""),
		BodyPlain: buildEmailPlain("New Submission", greeting, paragraphs, meta, nil, "", ""),
	}
}

func composeCommentReceived(sub *models.ProjectSubmission, comment *models.SubmissionComment) emailContent {
	subject := fmt.Sprintf("New Reply from Submitter: %s", sub.Title)
	greeting := "Hello,"
	paragraphs := []string{
		fmt.Sprintf("%s replied on %q:", sub.ContactName, sub.Title),
		comment.Message,
	}
	meta := []emailMetaItem{
		{Label: "Project Title", Value: sub.Title},
		{Label: "Contact", Value: sub.ContactName},
		{Label: "Email", Value: sub.ContactEmail},
	}

	return emailContent{
		Subject:   subject,
		BodyHTML:  buildEmailHTML(subject, "Submitter Reply", greeting, paragraphs, meta, nil, "", ""),
		BodyPlain: buildEmailPlain("Submitter Reply", greeting, paragraphs, meta, nil, "", ""),
	}
}

func nonEmptyMeta(meta []emailMetaItem) []emailMetaItem {
	rows := make([]emailMetaItem, 0, len(meta))
	for _, item := range meta {
		if strings.TrimSpace(item.Label) == "" || strings.TrimSpace(item.Value) == "" {
			continue
		}
		rows = append(rows, item)
	}
	return rows
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
