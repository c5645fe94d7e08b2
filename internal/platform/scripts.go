package platform

import (
	"fmt"
	"strings"
)

// appleQuote renders s as an AppleScript string literal.
func appleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// appleScript builds the osascript program for Notification Center.
// display notification has no icon or expiry, so only the text is used.
func appleScript(title, body string) string {
	return fmt.Sprintf("display notification %s with title %s", appleQuote(body), appleQuote(title))
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// toastScript builds the PowerShell program that shows a Windows toast.
// An icon selects the image template; a transient notification expires
// from the action center after the timeout.
func toastScript(title, body string, opts Options) string {
	icon := strings.TrimSpace(opts.IconPath)
	tmpl := "ToastText02"
	if icon != "" {
		tmpl = "ToastImageAndText02"
	}
	var b strings.Builder
	b.WriteString("[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; ")
	fmt.Fprintf(&b, "$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s); ", tmpl)
	b.WriteString(`$texts = $template.GetElementsByTagName("text"); `)
	fmt.Fprintf(&b, "$texts.Item(0).AppendChild($template.CreateTextNode(%s)) > $null; ", psQuote(title))
	fmt.Fprintf(&b, "$texts.Item(1).AppendChild($template.CreateTextNode(%s)) > $null; ", psQuote(body))
	if icon != "" {
		fmt.Fprintf(&b, `$template.GetElementsByTagName("image").Item(0).SetAttribute("src", %s); `, psQuote(icon))
	}
	b.WriteString("$toast = [Windows.UI.Notifications.ToastNotification]::new($template); ")
	if opts.Transient {
		fmt.Fprintf(&b, "$toast.ExpirationTime = [DateTimeOffset]::Now.AddMilliseconds(%d); ", opts.timeout())
	}
	fmt.Fprintf(&b, "[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show($toast);", psQuote(AppName))
	return b.String()
}
