package service

// Prompt templates for the Gemini summarizer. Placeholders use the same
// {{key}} substitution as the email templates.

const newsSummaryPrompt = `You are a financial newsletter writer. Summarize the following market news
articles into a daily digest email body.

Rules:
- Output HTML only, no markdown and no <html>/<body> wrapper. Use inline
  styles matching a dark theme: background #141414, body text #CCDADC,
  accents #FDD458.
- One short section per article: a linked headline, a two-sentence takeaway
  in plain language, and the source name.
- Order the sections as given. Do not invent articles, tickers or numbers
  that are not in the data.
- Keep the whole digest under 600 words.

Articles (JSON):
{{newsData}}`

const welcomeIntroPrompt = `Write a single warm, personalized welcome paragraph (2-3 sentences, plain
text, no greeting line) for a new user of a stock market tracking app. Tailor
it to their profile below without quoting the fields back verbatim.

Profile:
{{userProfile}}`

// noNewsContentPlaceholder is sent when summarization fails so the digest
// still goes out on schedule
const noNewsContentPlaceholder = `<p style="margin: 0 0 20px 0; font-size: 16px; line-height: 1.6;">
  Markets were quiet today. No fresh news summary is available for your
  watchlist, but prices and charts are always up to date in the app.
</p>`

// defaultWelcomeIntro is used when the personalized intro cannot be generated
const defaultWelcomeIntro = "Thanks for joining! Your account is ready, and your personalized market dashboard is waiting for its first stock."
