package graphql

import (
	"time"

	"jobboard/internal/repository"
	"jobboard/internal/search"
)

func candidateQueryFromArgs(args map[string]any) repository.CandidateQuery {
	q := repository.CandidateQuery{
		Skills:      stringListArg(args, "skills"),
		Location:    stringArg(args, "location"),
		JobTitle:    stringArg(args, "jobTitle"),
		JobType:     stringArg(args, "jobType"),
		Degree:      stringArg(args, "degree"),
		Gender:      stringArg(args, "gender"),
		RecruiterID: stringArg(args, "employerId"),
		Status:      stringArg(args, "status"),
	}
	if v, ok := args["salaryMin"].(int); ok {
		n := int64(v)
		q.SalaryMin = &n
	}
	if v, ok := args["salaryMax"].(int); ok {
		n := int64(v)
		q.SalaryMax = &n
	}
	if v, ok := args["ageMin"].(int); ok {
		n := v
		q.AgeMin = &n
	}
	if v, ok := args["ageMax"].(int); ok {
		n := v
		q.AgeMax = &n
	}
	if v, ok := args["experienceMin"].(float64); ok {
		q.ExperienceMin = &v
	}
	if v, ok := args["experienceMax"].(float64); ok {
		q.ExperienceMax = &v
	}
	if tok := stringArg(args, "freshness"); tok != "" {
		q.UpdatedSince = search.ParseFreshness(tok, time.Now().UTC())
	}
	return q
}
