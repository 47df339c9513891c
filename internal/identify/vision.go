package identify

import (
	"context"
	"fmt"
	"os"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// maxVisionResults caps the object annotations requested per image.
const maxVisionResults = 10

// VisionDetector wraps the Cloud Vision object-localization API as the
// pipeline's ObjectDetector. One client is created at startup and reused;
// the underlying transport handles its own connection pooling.
type VisionDetector struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionDetector creates the Vision API client. credentialsFile may be
// empty, in which case application-default credentials are used.
func NewVisionDetector(ctx context.Context, credentialsFile string) (*VisionDetector, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("identify: creating vision client: %w", err)
	}
	return &VisionDetector{client: client}, nil
}

// DetectObjects submits the image for object localization and returns the
// detected object labels with their scores.
func (d *VisionDetector) DetectObjects(ctx context.Context, imagePath string) ([]DetectedObject, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("identify: reading image for vision: %w", err)
	}

	resp, err := d.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image: &visionpb.Image{Content: data},
			Features: []*visionpb.Feature{{
				Type:       visionpb.Feature_OBJECT_LOCALIZATION,
				MaxResults: maxVisionResults,
			}},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("identify: localizing objects: %w", err)
	}
	if len(resp.GetResponses()) == 0 {
		return nil, fmt.Errorf("identify: vision returned no response")
	}

	res := resp.GetResponses()[0]
	if status := res.GetError(); status != nil {
		return nil, fmt.Errorf("identify: vision annotation failed: %s", status.GetMessage())
	}

	annotations := res.GetLocalizedObjectAnnotations()
	objects := make([]DetectedObject, 0, len(annotations))
	for _, a := range annotations {
		objects = append(objects, DetectedObject{
			Name:  a.GetName(),
			Score: float64(a.GetScore()),
		})
	}
	return objects, nil
}

// Close releases the Vision API client.
func (d *VisionDetector) Close() error {
	return d.client.Close()
}
