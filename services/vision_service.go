package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kthiza/protein-tracking-app/nutrition"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// VisionService wraps the vision collaborator. It is a black box that turns
// image bytes into (label, confidence) pairs; everything downstream treats a
// failure here as "nothing detected", never as a fatal error.
type VisionService struct {
	client  *rekognition.Client
	timeout time.Duration
}

func NewVisionService() (*VisionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &VisionService{
		client:  rekognition.NewFromConfig(cfg),
		timeout: 10 * time.Second,
	}, nil
}

// DetectFood labels one image. Parent labels ("Food", "Meat") come back as
// web entities, per-instance hits as crops, so the pipeline can tell primary
// evidence from corroboration.
func (v *VisionService) DetectFood(ctx context.Context, imageBytes []byte) (nutrition.Detections, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	out, err := v.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: imageBytes},
		MaxLabels:     aws.Int32(15),
		MinConfidence: aws.Float32(50),
	})
	if err != nil {
		return nutrition.Detections{}, err
	}

	var d nutrition.Detections
	for _, l := range out.Labels {
		if l.Name == nil || l.Confidence == nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(*l.Name))
		conf := float64(*l.Confidence) / 100
		d.Labels = append(d.Labels, nutrition.DetectedLabel{Text: name, Confidence: conf})

		for _, p := range l.Parents {
			if p.Name != nil {
				d.WebEntities = append(d.WebEntities, nutrition.DetectedLabel{
					Text:       strings.ToLower(strings.TrimSpace(*p.Name)),
					Confidence: conf,
				})
			}
		}
		for _, inst := range l.Instances {
			if inst.Confidence != nil {
				d.Crops = append(d.Crops, nutrition.DetectedLabel{
					Text:       name,
					Confidence: float64(*inst.Confidence) / 100,
				})
			}
		}
	}
	return d, nil
}

// FilenameFallback guesses labels from the uploaded filename when the vision
// collaborator is unavailable. "grilled_chicken_rice.jpg" is weak evidence,
// but it beats forcing manual entry for a named photo.
func FilenameFallback(filename string) []nutrition.DetectedLabel {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.ToLower(base)
	for _, sep := range []string{"_", "-", "."} {
		base = strings.ReplaceAll(base, sep, " ")
	}
	words := strings.Fields(base)
	if len(words) == 0 {
		return nil
	}
	// One label per run of words, at a fixed modest confidence.
	text := strings.Join(words, " ")
	return []nutrition.DetectedLabel{{Text: text, Confidence: 0.65}}
}
