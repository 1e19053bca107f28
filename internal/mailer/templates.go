package mailer

// Email bodies are plain HTML with {{placeholder}} substitution. The digest
// body arrives pre-rendered from the summarizer, so no template engine is
// needed beyond string replacement.

const welcomeEmailTemplate = `<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 0; background-color: #141414; font-family: Arial, Helvetica, sans-serif;">
  <div style="max-width: 600px; margin: 0 auto; padding: 32px 24px; color: #CCDADC;">
    <h1 style="margin: 0 0 24px 0; font-size: 24px; color: #FDD458;">Welcome aboard, {{name}}</h1>
    <p style="margin: 0 0 20px 0; font-size: 16px; line-height: 1.6;">{{intro}}</p>
    <p style="margin: 0 0 20px 0; font-size: 16px; line-height: 1.6;">
      Search for any stock, open its page to see live charts and company data,
      and hit &quot;Add to Watchlist&quot; to start tracking it. Once your watchlist has
      a few symbols, your daily market digest will be tailored to them.
    </p>
    <p style="margin: 32px 0 0 0; font-size: 13px; color: #6B7280;">
      You are receiving this email because you signed up for an account.
    </p>
  </div>
</body>
</html>`

const newsSummaryEmailTemplate = `<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 0; background-color: #141414; font-family: Arial, Helvetica, sans-serif;">
  <div style="max-width: 600px; margin: 0 auto; padding: 32px 24px; color: #CCDADC;">
    <h1 style="margin: 0 0 8px 0; font-size: 24px; color: #FDD458;">Market News Summary</h1>
    <p style="margin: 0 0 24px 0; font-size: 14px; color: #6B7280;">{{date}}</p>
    {{newsContent}}
    <p style="margin: 32px 0 0 0; font-size: 13px; color: #6B7280;">
      This digest is based on your watchlist. Add or remove stocks to change what you see here.
    </p>
  </div>
</body>
</html>`
