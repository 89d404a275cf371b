package repository

import "github.com/Ujjwal3492/Fitness/internal/model"

// TrainerPatch lists the trainer fields to change. Nil fields are left as
// they are.
type TrainerPatch struct {
	FullName        *string
	ProfilePicture  *string
	MediaID         *string
	Location        *string
	Experience      *string
	Philosophy      *string
	Specializations *model.StringList
	Qualifications  *model.StringList
	CorePrinciples  *model.StringList
	Services        *model.StringList
}

// Apply merges the patch into t
func (p *TrainerPatch) Apply(t *model.Trainer) {
	setString(&t.FullName, p.FullName)
	setString(&t.ProfilePicture, p.ProfilePicture)
	setString(&t.MediaID, p.MediaID)
	setString(&t.Location, p.Location)
	setString(&t.Experience, p.Experience)
	setString(&t.Philosophy, p.Philosophy)
	setList(&t.Specializations, p.Specializations)
	setList(&t.Qualifications, p.Qualifications)
	setList(&t.CorePrinciples, p.CorePrinciples)
	setList(&t.Services, p.Services)
}

// TestimonialPatch lists the testimonial fields to change
type TestimonialPatch struct {
	Name        *string
	Designation *string
	VideoURL    *string
	MediaID     *string
}

// Apply merges the patch into t
func (p *TestimonialPatch) Apply(t *model.Testimonial) {
	setString(&t.Name, p.Name)
	setString(&t.Designation, p.Designation)
	setString(&t.VideoURL, p.VideoURL)
	setString(&t.MediaID, p.MediaID)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setList(dst *model.StringList, v *model.StringList) {
	if v != nil {
		*dst = *v
	}
}
