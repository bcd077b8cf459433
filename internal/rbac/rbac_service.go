package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"

	"go-dailyreport/internal/role"
)

// The policy matrix is fixed: the system has exactly two roles. The
// enforcer is still the single authority both the route middleware and
// the services consult.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

var policies = [][]string{
	{string(role.Admin), "employee", "create"},
	{string(role.Admin), "employee", "update"},
	{string(role.Admin), "employee", "delete"},
	{string(role.Admin), "employee", "read"},
	{string(role.Admin), "report", "read"},
	{string(role.Admin), "report", "create"},
	{string(role.Admin), "report", "update"},
	{string(role.Admin), "report", "delete"},
	{string(role.General), "employee", "read"},
	{string(role.General), "report", "read"},
	{string(role.General), "report", "create"},
	{string(role.General), "report", "update"},
	{string(role.General), "report", "delete"},
}

type Service interface {
	Enforce(r role.Role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService() (Service, error) {
	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(r role.Role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(string(r), resource, action)
}
