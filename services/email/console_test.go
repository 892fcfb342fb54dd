package emailsvc

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/warsha/core"
)

func TestConsoleServiceMock_capturesMessages(t *testing.T) {
	ClearSentMessages()
	svc := NewConsoleServiceMock()

	svc.SendMessages(
		&core.EmailMessage{Subject: "No recipients"}, // skipped
		&core.EmailMessage{To: []mail.Address{{Address: "awe@test.cd"}}, Subject: "Hey"}, // skipped: empty body
		&core.EmailMessage{To: []mail.Address{{Address: "awe@test.cd"}}, Subject: "Hey", BodyStr: "Yo"},
	)

	assert.Len(t, SentMessages, 1)
	msg, ok := LastSentMessage()
	assert.True(t, ok)
	assert.Equal(t, "Hey", msg.Subject)
	assert.Equal(t, "Yo", msg.Render())
	assert.Equal(t, []mail.Address{{Address: "awe@test.cd"}}, msg.To)
}
