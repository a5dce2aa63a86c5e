package email

import (
	"accountd/internal/core/domain/user"
	"context"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SesSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender               string
	passwordResetBaseUrl url.URL
}

func NewSesSender(
	awsConfig aws.Config,
	sender string,
	passwordResetBaseUrl url.URL,
) *SesSender {
	return &SesSender{
		ses:                  ses.NewFromConfig(awsConfig),
		sender:               sender,
		passwordResetBaseUrl: passwordResetBaseUrl,
	}
}

func (s *SesSender) SendResetToken(ctx context.Context, u user.User, token user.ResetToken) error {
	subject := passwordResetSubject
	body := passwordResetBody(s.passwordResetBaseUrl, token)
	email := string(u.Email)

	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &body},
				},
			},
		},
	)
	return err
}
