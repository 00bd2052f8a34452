package inquiry

import "hostelhub_backend/internal/model"

// Principal servis sınırında değerlendirilen kimlik: kullanıcı + rol.
// Yetki kontrolleri route'lara dağıtılmak yerine use case çağrılmadan
// önce burada yapılır.
type Principal struct {
	UserID uint
	Role   model.UserRole
}

func (p Principal) CanManageInquiries() bool {
	switch p.Role {
	case model.RoleAdmin, model.RoleManager, model.RoleStaff:
		return true
	}
	return false
}

// CanBulkOperate toplu atama/yenileme işlemleri staff'a kapalıdır
func (p Principal) CanBulkOperate() bool {
	return p.Role == model.RoleAdmin || p.Role == model.RoleManager
}
