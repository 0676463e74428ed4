package utils

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

var rekClient *rekognition.Client

// must be called once at startup (e.g. in main.go)
func InitRekognition() {
	awsRegion := os.Getenv("AWS_REGION")
	if awsRegion == "" {
		log.Fatal("AWS_REGION not set")
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		log.Fatalf("unable to load AWS config: %v", err)
	}
	rekClient = rekognition.NewFromConfig(cfg)
}

// DetectFoodLabels tags a diary photo with up to maxLabels detected labels,
// comma-joined. Callers treat failures as non-fatal; the photo is stored
// either way.
func DetectFoodLabels(imageBytes []byte, maxLabels int32) (string, error) {
	if rekClient == nil {
		InitRekognition()
	}

	out, err := rekClient.DetectLabels(context.TODO(), &rekognition.DetectLabelsInput{
		Image:         &rektypes.Image{Bytes: imageBytes},
		MaxLabels:     aws.Int32(maxLabels),
		MinConfidence: aws.Float32(70),
	})
	if err != nil {
		return "", err
	}

	var labels []string
	for _, l := range out.Labels {
		if l.Name != nil {
			labels = append(labels, *l.Name)
		}
	}
	return strings.Join(labels, ", "), nil
}
