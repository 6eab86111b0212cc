package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/licitapro/licitaciones-api/internal/application/dto"
	"github.com/licitapro/licitaciones-api/internal/application/permission"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
)

// LocalPermissionSet guarda el PermissionSet resuelto del request.
const LocalPermissionSet = "permission_set"

// PermissionMiddleware resuelve el PermissionSet del usuario UNA vez por
// request y lo deja en locals. Los gates posteriores (RequireModule,
// RequireCompanyAdmin) lo reutilizan sin volver a resolver.
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 → sin user_id en el contexto.
//   - 403 → usuario irresoluble (no existe, inactivo, sin empresa): falla cerrado.
//   - 503 → fallo de infraestructura al consultar la DB.
func PermissionMiddleware(resolver *permission.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}
		ps, err := resolver.Resolve(c.Context(), userID)
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalPermissionSet, ps)
		return c.Next()
	}
}

// GetPermissionSet devuelve el PermissionSet del request. El bool indica si
// el PermissionMiddleware llegó a resolverlo.
func GetPermissionSet(c *fiber.Ctx) (entity.PermissionSet, bool) {
	v := c.Locals(LocalPermissionSet)
	if v == nil {
		return entity.PermissionSet{}, false
	}
	ps, ok := v.(entity.PermissionSet)
	return ps, ok
}

// RequireModule devuelve un middleware que exige el módulo activo para la
// empresa del usuario. Consume el PermissionSet ya resuelto; si no hay
// (middleware mal apilado), deniega: un estado indeterminado nunca es "permitido".
func RequireModule(moduleName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ps, ok := GetPermissionSet(c)
		if !ok {
			return respondDenied(c, &permission.Denied{Reason: permission.ReasonModuleNotEnabled, Module: moduleName})
		}
		if d := permission.CheckModule(ps, moduleName); d != nil {
			return respondDenied(c, d)
		}
		return c.Next()
	}
}

// RequireCompanyAdmin devuelve un middleware que exige super admin o admin de empresa.
func RequireCompanyAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ps, ok := GetPermissionSet(c)
		if !ok {
			return respondDenied(c, &permission.Denied{Reason: permission.ReasonAdminRequired})
		}
		if d := permission.CheckCompanyAdmin(ps); d != nil {
			return respondDenied(c, d)
		}
		return c.Next()
	}
}

// RequireSuperAdmin devuelve un middleware que exige super admin (operación de plataforma).
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ps, ok := GetPermissionSet(c)
		if !ok || !ps.IsSuperAdmin {
			return respondDenied(c, &permission.Denied{Reason: permission.ReasonAdminRequired})
		}
		return c.Next()
	}
}

// respondDenied traduce la denegación del motor a la convención HTTP de la
// API: 403 con el código de razón legible por máquina.
func respondDenied(c *fiber.Ctx, d *permission.Denied) error {
	resp := dto.ErrorResponse{Module: d.Module}
	switch d.Reason {
	case permission.ReasonModuleNotEnabled:
		resp.Code = "MODULE_NOT_ENABLED"
		resp.Message = "el módulo '" + d.Module + "' no está activo para esta empresa"
	case permission.ReasonAdminRequired:
		resp.Code = "ADMIN_REQUIRED"
		resp.Message = "se requiere rol de administrador"
	case permission.ReasonCoreModule:
		resp.Code = "CORE_MODULE"
		resp.Message = "un módulo core no se puede desactivar"
	default:
		resp.Code = "FORBIDDEN"
		resp.Message = "acceso denegado"
	}
	return c.Status(fiber.StatusForbidden).JSON(resp)
}
