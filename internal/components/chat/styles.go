package chat

// WelcomeText is shown before the first message.
const WelcomeText = `Welcome to the HR Assistant!

Type a message and press Enter to start chatting.

Try:
• "List all employees"
• "How many leave days do I have left?"
• "Apply for leave next Monday"
• "Show pending leave requests"`
