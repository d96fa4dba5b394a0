package notify

import "fmt"

type message struct {
	to      string
	subject string
	body    string
}

func bookingMessages(n BookingNotice) []message {
	return []message{
		{
			to:      n.UserEmail,
			subject: "Session Booking Confirmation - SpeakEasy",
			body: fmt.Sprintf(`Hi there,

This is a confirmation for your session booking.

Session Details:
Date: %s
Time: %s
Speaker: %s

Thank you for using SpeakEasy!
`, n.Date, n.Time, n.SpeakerName),
		},
		{
			to:      n.SpeakerEmail,
			subject: "New Session Booking - SpeakEasy",
			body: fmt.Sprintf(`Hi %s,

You have a new session booking!

Session Details:
Date: %s
Time: %s

Please log in to your SpeakEasy account to view more details about the booking.

Thank you for using SpeakEasy!
`, n.SpeakerName, n.Date, n.Time),
		},
	}
}

func cancellationMessage(n CancellationNotice) message {
	return message{
		to:      n.SpeakerEmail,
		subject: "Session Booking Cancelled - SpeakEasy",
		body: fmt.Sprintf(`Hi %s,

%s has cancelled their booking.

Session Details:
Date: %s
Time: %s

Thank you for using SpeakEasy!
`, n.SpeakerName, n.UserName, n.Date, n.Time),
	}
}

func feedbackMessage(n FeedbackNotice) message {
	text := n.FeedbackText
	if text == "" {
		text = "(no comment)"
	}
	return message{
		to:      n.SpeakerEmail,
		subject: "New Session Feedback - SpeakEasy",
		body: fmt.Sprintf(`Hi %s,

%s rated your session on %s at %s.

Rating: %d/5
Feedback: %s

Thank you for using SpeakEasy!
`, n.SpeakerName, n.UserName, n.Date, n.Time, n.Rating, text),
	}
}

func otpMessage(n OTPNotice) message {
	return message{
		to:      n.Email,
		subject: "Verify your email - SpeakEasy",
		body: fmt.Sprintf(`Hi %s,

Your SpeakEasy verification code is: %s

The code expires at %s.

Thank you for using SpeakEasy!
`, n.Name, n.Code, n.ExpiresAt.UTC().Format("2006-01-02 15:04 MST")),
	}
}
