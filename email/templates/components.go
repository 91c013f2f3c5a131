// Package templates provides email template components
package templates

import "fmt"

func GetParagraph(text string) string {
	return fmt.Sprintf(`<p style="font-family: Helvetica, sans-serif; font-size: 16px; font-weight: normal; margin: 0; margin-bottom: 16px;">%s</p>`, text)
}

func GetHeading(text string) string {
	return fmt.Sprintf(`<h2 style="font-family: Helvetica, sans-serif; font-size: 20px; font-weight: bold; margin: 0; margin-bottom: 16px;">%s</h2>`, text)
}

func GetDetailRow(label, value string) string {
	return fmt.Sprintf(`<p style="font-family: Helvetica, sans-serif; font-size: 14px; margin: 0; margin-bottom: 8px;"><strong>%s:</strong> %s</p>`, label, value)
}

type EmailLayoutProps struct {
	Content    string
	FooterText string
}

func GetEmailLayout(props EmailLayoutProps) string {
	footerText := props.FooterText
	if footerText == "" {
		footerText = "TheEace client dashboard"
	}

	return fmt.Sprintf(`<!doctype html>
<html>
  <body style="background-color: #f4f5f6; font-family: Helvetica, sans-serif; font-size: 16px; margin: 0; padding: 0;">
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" width="100%%" style="background-color: #f4f5f6;">
      <tr>
        <td>&nbsp;</td>
        <td style="max-width: 600px; padding: 24px; margin: 0 auto; display: block;">
          <div style="background: #ffffff; border-radius: 4px; padding: 24px;">
            %s
          </div>
          <div style="padding-top: 16px; text-align: center; color: #9a9ea6; font-size: 14px;">
            %s
          </div>
        </td>
        <td>&nbsp;</td>
      </tr>
    </table>
  </body>
</html>`, props.Content, footerText)
}
