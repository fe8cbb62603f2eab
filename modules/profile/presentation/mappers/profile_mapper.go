package mappers

import (
	"strconv"

	"github.com/emstack/ems-console/modules/profile/domain/aggregates/profile"
	"github.com/emstack/ems-console/modules/profile/presentation/viewmodels"
	"github.com/emstack/ems-console/pkg/shared"
)

func ProfileToProps(p profile.Profile, assetBase string) *viewmodels.ProfileProps {
	return &viewmodels.ProfileProps{
		Name:            p.Name(),
		Email:           p.Email(),
		Role:            p.Role(),
		Salary:          strconv.FormatFloat(p.Salary(), 'f', -1, 64),
		ProfileImageURL: shared.AssetURL(p.ProfileImage(), assetBase),
		Departments:     p.Departments(),
		HeadDepartments: p.HeadDepartments(),
	}
}
