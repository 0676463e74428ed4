package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

func InitSES() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("AWS config load failed: %v", err)
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	if sesClient == nil {
		return fmt.Errorf("ses client not initialized")
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendInvitationEmail mails the single-use registration link to a
// prospective patient.
func SendInvitationEmail(to, nutritionistName, token string) error {
	subject := "Convite para acompanhamento nutricional"
	link := fmt.Sprintf("%s/register?invite=%s", os.Getenv("APP_BASE_URL"), token)
	body := fmt.Sprintf(
		"%s convidou você para acompanhamento nutricional.\n\nComplete seu cadastro em: %s\n\nO link vale para um único cadastro.",
		nutritionistName, link,
	)
	return sendEmail(to, subject, body)
}

// SendSubscriptionEmail notifies the patient about a plan decision.
func SendSubscriptionEmail(to, planType, status string) error {
	subject := "Atualização do seu plano"
	body := fmt.Sprintf("Seu plano %s agora está com o status: %s.", planType, status)
	return sendEmail(to, subject, body)
}
