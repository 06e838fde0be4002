package assistant

import (
	"strings"

	"github.com/dvloznov/budgetbuddy/internal/domain"
)

// buildIntentPrompt constructs the classification prompt. The model must
// answer with exactly one member of the closed intent set; anything else
// is collapsed by the caller.
func buildIntentPrompt(text string) string {
	basePrompt :=
		"You are the intent classifier for a personal finance tracking assistant.\n\n" +
			"Task:\n" +
			"- Read the user's message and decide what they want.\n" +
			"- Answer with EXACTLY ONE of: add_transaction, get_balance, get_statement, general_inquiry.\n" +
			"- Output the bare intent string only. No quotes, no punctuation, no explanation.\n\n"

	rulesPrompt :=
		"Rules:\n" +
			"- The message can be in any language or script; classify it all the same.\n" +
			"- Use get_statement ONLY when the user asks for a statement covering a whole month.\n" +
			"- A question about spending on one specific day is general_inquiry, NOT get_statement.\n" +
			"- If you cannot determine the intent, answer general_inquiry.\n\n"

	examplesPrompt :=
		"Examples:\n" +
			"Message: I spent 500 on groceries.\n" +
			"Intent: add_transaction\n\n" +
			"Message: What is my current balance?\n" +
			"Intent: get_balance\n\n" +
			"Message: Give me the statement for February 2025.\n" +
			"Intent: get_statement\n\n" +
			"Message: How much did I spend on 25 January 2025?\n" +
			"Intent: general_inquiry\n"

	return basePrompt + rulesPrompt + examplesPrompt + "\nMessage: " + text + "\nIntent:"
}

// buildExtractionPrompt constructs the transaction-extraction prompt. The
// model must return a strict JSON object with exactly four keys.
func buildExtractionPrompt(text string) string {
	var b strings.Builder

	b.WriteString("Extract transaction details from the text below.\n\n")
	b.WriteString("Output STRICT JSON only (no comments, no extra text) with exactly these keys:\n")
	b.WriteString("- \"amount\": number, or null if no amount can be determined\n")
	b.WriteString("- \"account\": string, one of: ")
	for i, c := range domain.Categories {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(c))
	}
	b.WriteString("\n")
	b.WriteString("- \"transaction_type\": \"Income\" or \"Expense\"\n")
	b.WriteString("- \"date\": string in ISO format \"YYYY-MM-DD\", or null if no date is given\n\n")

	b.WriteString("Rules:\n")
	b.WriteString("- Set any value you cannot determine to null. Never guess an amount.\n")
	b.WriteString("- Resolve relative dates against the text if possible, otherwise use null.\n")
	b.WriteString("- Return ONLY valid raw JSON. Do NOT wrap the response in code fences.\n")
	b.WriteString("- Output must begin with \"{\" and end with \"}\".\n\n")

	b.WriteString("Examples:\n")
	b.WriteString("Text: Spent 500 on groceries\n")
	b.WriteString(`Output: {"amount": 500, "account": "Home", "transaction_type": "Expense", "date": null}` + "\n\n")
	b.WriteString("Text: Received 1000 from freelance work on 2025/01/01\n")
	b.WriteString(`Output: {"amount": 1000, "account": "Freelance", "transaction_type": "Income", "date": "2025-01-01"}` + "\n\n")
	b.WriteString("Text: Spent 200 on clothes on 20th January 2025\n")
	b.WriteString(`Output: {"amount": 200, "account": "Clothes", "transaction_type": "Expense", "date": "2025-01-20"}` + "\n\n")
	b.WriteString("Text: Received 500 from salary\n")
	b.WriteString(`Output: {"amount": 500, "account": "Salary", "transaction_type": "Income", "date": null}` + "\n\n")

	b.WriteString("Text: ")
	b.WriteString(text)
	return b.String()
}

// buildSummaryPrompt embeds the owner-stripped transaction history and the
// user's query into the analyst prompt. All arithmetic rules are spelled
// out so the model computes answers rather than improvising them.
func buildSummaryPrompt(historyJSON, query string) string {
	var b strings.Builder

	b.WriteString("You are a precise financial data analyst for a personal expense tracking assistant.\n")
	b.WriteString("You are given the user's transactions as a JSON array and a question about them.\n\n")

	b.WriteString("Transactions:\n")
	b.WriteString(historyJSON)
	b.WriteString("\n\nQuestion:\n")
	b.WriteString(query)
	b.WriteString("\n\n")

	b.WriteString("Instructions:\n")
	b.WriteString("1. Each transaction has keys \"date\" (YYYY-MM-DD), \"category\", \"income\" (number, may be 0), \"expenditure\" (number, may be 0) and \"remarks\". Treat missing or non-numeric values as 0.\n")
	b.WriteString("2. Balance questions: the balance is the sum of all \"income\" minus the sum of all \"expenditure\". An empty transaction list means the balance is 0.\n")
	b.WriteString("3. Spending on a specific date: sum \"expenditure\" over transactions whose \"date\" matches exactly. If none match, say \"No transactions found for <date>.\"\n")
	b.WriteString("4. Spending in a category: sum \"expenditure\" over transactions in that category. If none match, say \"No transactions found for <category>.\"\n")
	b.WriteString("5. \"Where did I spend the most?\": total \"expenditure\" per category and name the category with the highest total. If two categories tie, any one of them is a correct answer. With no transactions, say \"No transactions to analyze.\"\n")
	b.WriteString("6. Formatting: write numbers plainly, with no currency symbols. After a numeric answer, add one short remark based on the balance: below 0, advise care with expenses; exactly 0, suggest starting to track expenses since nothing is recorded yet; above 0 and below 20000, encourage saving more; 20000 or above, congratulate on saving.\n")
	b.WriteString("7. Answer in the same language and register as the question, including code-mixed registers.\n")
	b.WriteString("8. If the question is just a greeting, greet back briefly, say you are BudgetBuddy the expense tracking assistant, and ask how you can help with their finances. If the question is unrelated to finances, answer briefly and politely and steer back to finances.\n\n")

	b.WriteString("Examples:\n")
	b.WriteString(`Transactions: [{"date": "2025-01-25", "category": "Salary", "income": 10000, "expenditure": 0, "remarks": "Salary"}, {"date": "2025-01-25", "category": "Home", "income": 0, "expenditure": 5000, "remarks": "Monthly rent"}, {"date": "2025-01-26", "category": "Home", "income": 0, "expenditure": 2000, "remarks": "Weekly groceries"}]` + "\n")
	b.WriteString("Question: What is my current balance?\n")
	b.WriteString("Answer: Your current balance is 3000. Consider saving more.\n\n")

	b.WriteString(`Transactions: [{"date": "2024-01-25", "category": "Salary", "income": 25000, "expenditure": 0, "remarks": "Salary"}, {"date": "2024-01-25", "category": "Home", "income": 0, "expenditure": 10000, "remarks": "Monthly rent"}]` + "\n")
	b.WriteString("Question: How much did I spend on 2024-01-25?\n")
	b.WriteString("Answer: You spent 10000 on 2024-01-25. Great job on saving!\n\n")

	b.WriteString(`Transactions: []` + "\n")
	b.WriteString("Question: What is my current balance?\n")
	b.WriteString("Answer: Your balance is 0. It seems you haven't added any transactions yet. Track your expenses regularly.\n\n")

	b.WriteString("Follow the instructions precisely and give a clear, concise answer.")
	return b.String()
}

// buildHumanizePrompt constructs the rewrite prompt for terse system
// messages. The tone policy is advisory phrasing guidance given to the
// model, keyed on any balance figure appearing in the message.
func buildHumanizePrompt(systemMessage string) string {
	basePrompt :=
		"You are a friendly personal finance assistant. Rewrite the system message below " +
			"as a warm, helpful reply to the user.\n\n" +
			"Rules:\n" +
			"- Reply in the same language as the system message.\n" +
			"- Return only the reply text, nothing else.\n" +
			"- Never mention currency symbols.\n" +
			"- If the message contains a balance below 0, gently caution the user about overspending.\n" +
			"- If the balance is exactly 0, suggest they start tracking their expenses.\n" +
			"- If the balance is above 0 and below 20000, encourage them to save more.\n" +
			"- If the balance is 20000 or more, congratulate them on saving.\n\n"

	examplesPrompt :=
		"Examples:\n" +
			"System message: I'm sorry, I cannot provide that information.\n" +
			"Reply: I apologize for the inconvenience, something seems to be wrong. Is there anything else I can help you with?\n\n" +
			"System message: Current available balance: 167800\n" +
			"Reply: You have a balance of 167800. That's great, keep up the good work and congratulations on saving!\n\n"

	return basePrompt + examplesPrompt + "System message: " + systemMessage + "\nReply:"
}
